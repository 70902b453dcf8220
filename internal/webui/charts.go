package webui

import (
	"fmt"
	"html/template"
	"math"
	"strconv"
	"strings"

	"pathways.rf2lab.org/internal/models"
)

const (
	chartWidth     = 640
	labelWidth     = 260
	valueWidth     = 70
	rowHeight      = 26
	barHeight      = 16
	pieRadius      = 90
	pieLegendX     = 220
	legendRowSpace = 22
)

var esc = template.HTMLEscapeString

// num formats SVG coordinates with a fixed precision so output is stable.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func colorAt(c models.ChartConfig, i int) string {
	if len(c.Colors) == 0 {
		return "#888888"
	}
	return c.Colors[i%len(c.Colors)]
}

func svgOpen(b *strings.Builder, title string, height int) {
	fmt.Fprintf(b, `<svg class="chart" viewBox="0 0 %d %d" role="img" aria-label="%s" xmlns="http://www.w3.org/2000/svg">`,
		chartWidth, height, esc(title))
	fmt.Fprintf(b, `<title>%s</title>`, esc(title))
}

// renderChart draws a chart as inline SVG according to its kind.
func renderChart(c models.ChartConfig) template.HTML {
	switch c.ChartType {
	case models.ChartPie:
		return pieChart(c)
	case models.ChartRange:
		return rangeChart(c)
	default:
		return barChart(c)
	}
}

func pieChart(c models.ChartConfig) template.HTML {
	points := c.Points()
	total := 0.0
	for _, p := range points {
		if p.Value > 0 {
			total += p.Value
		}
	}

	height := 2*pieRadius + 20
	if legend := len(points)*legendRowSpace + 20; legend > height {
		height = legend
	}
	cx, cy := float64(pieRadius+10), float64(height)/2

	var b strings.Builder
	svgOpen(&b, c.Title, height)

	angle := -math.Pi / 2
	for i, p := range points {
		if p.Value <= 0 || total == 0 {
			continue
		}
		frac := p.Value / total
		color := esc(colorAt(c, i))
		if frac >= 0.9999 {
			fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="%d" fill="%s"/>`, num(cx), num(cy), pieRadius, color)
			continue
		}
		end := angle + frac*2*math.Pi
		large := 0
		if frac > 0.5 {
			large = 1
		}
		fmt.Fprintf(&b, `<path d="M%s,%s L%s,%s A%d,%d 0 %d 1 %s,%s Z" fill="%s"/>`,
			num(cx), num(cy),
			num(cx+pieRadius*math.Cos(angle)), num(cy+pieRadius*math.Sin(angle)),
			pieRadius, pieRadius, large,
			num(cx+pieRadius*math.Cos(end)), num(cy+pieRadius*math.Sin(end)),
			color)
		angle = end
	}

	top := (height - len(points)*legendRowSpace) / 2
	for i, p := range points {
		y := top + i*legendRowSpace
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="14" height="14" fill="%s"/>`, pieLegendX, y, esc(colorAt(c, i)))
		fmt.Fprintf(&b, `<text x="%d" y="%d" class="legend">%s (%s)</text>`,
			pieLegendX+22, y+12, esc(p.Label), esc(models.FormatPercent(p.Value)))
	}

	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

func barChart(c models.ChartConfig) template.HTML {
	points := c.Points()
	height := len(points)*rowHeight + 30
	scale := 0.0
	if m := c.MaxValue(); m > 0 {
		scale = float64(chartWidth-labelWidth-valueWidth) / m
	}

	var b strings.Builder
	svgOpen(&b, c.Title, height)
	for i, p := range points {
		y := 10 + i*rowHeight
		fmt.Fprintf(&b, `<text x="%d" y="%d" class="label" text-anchor="end">%s</text>`,
			labelWidth-8, y+barHeight-3, esc(p.Label))
		w := math.Max(p.Value, 0) * scale
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%s" height="%d" fill="%s"><title>%s</title></rect>`,
			labelWidth, y, num(w), barHeight, esc(colorAt(c, i)), esc(p.Note))
		fmt.Fprintf(&b, `<text x="%s" y="%d" class="value">%s</text>`,
			num(float64(labelWidth)+w+6), y+barHeight-3, esc(models.FormatNumber(p.Value)))
	}
	if c.XAxis != "" {
		fmt.Fprintf(&b, `<text x="%d" y="%d" class="axis">%s</text>`, labelWidth, height-4, esc(c.XAxis))
	}
	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

func rangeChart(c models.ChartConfig) template.HTML {
	points := c.Points()
	height := len(points)*rowHeight + 30
	scale := 0.0
	if m := c.MaxValue(); m > 0 {
		scale = float64(chartWidth-labelWidth-valueWidth) / m
	}

	var b strings.Builder
	svgOpen(&b, c.Title, height)
	for i, p := range points {
		y := 10 + i*rowHeight
		mid := float64(y + barHeight/2)
		color := esc(colorAt(c, i))
		fmt.Fprintf(&b, `<text x="%d" y="%d" class="label" text-anchor="end">%s</text>`,
			labelWidth-8, y+barHeight-3, esc(p.Label))
		x1 := float64(labelWidth) + p.Low*scale
		x2 := float64(labelWidth) + p.High*scale
		fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="6" stroke-linecap="round"><title>%s</title></line>`,
			num(x1), num(mid), num(x2), num(mid), color, esc(p.Note))
		fmt.Fprintf(&b, `<circle cx="%s" cy="%s" r="6" class="marker"/>`,
			num(float64(labelWidth)+p.Value*scale), num(mid))
		fmt.Fprintf(&b, `<text x="%s" y="%d" class="value">%s</text>`,
			num(x2+10), y+barHeight-3, esc(models.FormatNumber(p.Value)))
	}
	if c.XAxis != "" {
		fmt.Fprintf(&b, `<text x="%d" y="%d" class="axis">%s</text>`, labelWidth, height-4, esc(c.XAxis))
	}
	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}
