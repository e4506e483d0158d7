package scoreboard

import (
	"bytes"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"partybets/domain/entities"
	"partybets/domain/utils"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
)

const maxNameRunes = 15

// TableColumn defines a column in the leaderboard table
type TableColumn struct {
	Header    string
	XPosition int
	ColorRGB  [3]float64
}

// TableRow represents a single row of data
type TableRow struct {
	Rank   int
	IsTop3 bool
	Data   []string
}

// TableStyle defines the visual style of the table
type TableStyle struct {
	Width           int
	MinHeight       int
	Padding         int
	RowHeight       int
	HighlightColors [3][4]float64 // gold, silver, bronze
}

// ImageGenerator renders party leaderboards as PNG images
type ImageGenerator struct {
	style TableStyle
}

// NewImageGenerator creates a new image generator with the default style
func NewImageGenerator() *ImageGenerator {
	return &ImageGenerator{
		style: TableStyle{
			Width:     380,
			MinHeight: 160,
			Padding:   15,
			RowHeight: 26,
			HighlightColors: [3][4]float64{
				{1, 0.84, 0, 0.1},     // 1st
				{0.8, 0.8, 0.8, 0.08}, // 2nd
				{0.8, 0.5, 0.2, 0.06}, // 3rd
			},
		},
	}
}

// GenerateLeaderboard renders the party summary, biggest winner first
func (g *ImageGenerator) GenerateLeaderboard(partyName string, summary *entities.PartySummary) ([]byte, error) {
	columns := []TableColumn{
		{Header: "#", XPosition: g.style.Padding, ColorRGB: [3]float64{0.85, 0.85, 0.9}},
		{Header: "User", XPosition: g.style.Padding + 30, ColorRGB: [3]float64{1.0, 1.0, 1.0}},
		{Header: "Net", XPosition: g.style.Padding + 200, ColorRGB: [3]float64{1.0, 1.0, 1.0}},
	}

	rows := make([]TableRow, len(summary.Users))
	for i, user := range summary.Users {
		rows[i] = TableRow{
			Rank:   i + 1,
			IsTop3: i < 3 && user.NetAmount.IsPositive(),
			Data: []string{
				fmt.Sprintf("%d", i+1),
				truncateName(user.UserName),
				utils.FormatNet(user.NetAmount),
			},
		}
	}

	title := fmt.Sprintf("%s · pot %s", truncateName(partyName), utils.FormatMoney(utils.FromUnits(summary.TotalPot)))
	return g.generateTable(title, columns, rows)
}

func truncateName(name string) string {
	if utf8.RuneCountInString(name) <= maxNameRunes {
		return name
	}
	runes := []rune(name)
	return string(runes[:maxNameRunes-1]) + "…"
}

// generateTable draws the title, header and rows and encodes the result
func (g *ImageGenerator) generateTable(title string, columns []TableColumn, rows []TableRow) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("row_count", len(rows)).
			Debug("Leaderboard image generation completed")
	}()

	// Title (30px) + header (25px) + header padding (30px) + rows + bottom padding (15px)
	height := 30 + 25 + 30 + len(rows)*g.style.RowHeight + 15
	if len(rows) == 0 {
		height += g.style.RowHeight
	}
	if height < g.style.MinHeight {
		height = g.style.MinHeight
	}

	dc := gg.NewContext(g.style.Width, height)
	dc.SetFillRule(gg.FillRuleWinding)

	// Vertical gradient background
	for i := 0; i < height; i++ {
		t := float64(i) / float64(height)
		dc.SetRGB(0.02+t*0.03, 0.02+t*0.05, 0.05+t*0.1)
		dc.DrawLine(0, float64(i), float64(g.style.Width), float64(i))
		dc.Stroke()
	}

	face, err := loadFont(gomono.TTF, 11)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	titleFace, err := loadFont(gobold.TTF, 13)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	dc.SetFontFace(titleFace)
	dc.SetRGB(1.0, 1.0, 1.0)
	drawSharpText(dc, title, float64(g.style.Padding), 22)
	dc.SetFontFace(face)

	y := float64(55)

	// Header background and text
	dc.SetRGBA(0.3, 0.3, 0.4, 0.4)
	dc.DrawRectangle(0, y-15, float64(g.style.Width), 20)
	dc.Fill()

	dc.SetRGB(1.0, 1.0, 1.0)
	for _, col := range columns {
		drawSharpText(dc, col.Header, float64(col.XPosition), y)
	}

	dc.SetRGBA(0.6, 0.6, 0.7, 0.7)
	dc.SetLineWidth(1)
	dc.DrawLine(0, y+8, float64(g.style.Width), y+8)
	dc.Stroke()

	y += 30
	if len(rows) == 0 {
		dc.SetRGB(0.7, 0.7, 0.7)
		drawSharpText(dc, "No settled bets yet", float64(g.style.Padding), y)
	}

	for i, row := range rows {
		if row.IsTop3 {
			color := g.style.HighlightColors[i]
			dc.SetRGBA(color[0], color[1], color[2], color[3])
		} else {
			dc.SetRGBA(0.5, 0.5, 0.6, 0.02)
		}
		dc.DrawRectangle(0, y-15, float64(g.style.Width), float64(g.style.RowHeight))
		dc.Fill()

		if row.IsTop3 {
			drawMedal(dc, i, row.Rank, float64(g.style.Padding+3), y)
			dc.SetFontFace(face)
		} else {
			dc.SetRGB(columns[0].ColorRGB[0], columns[0].ColorRGB[1], columns[0].ColorRGB[2])
			drawSharpText(dc, row.Data[0], float64(columns[0].XPosition), y)
		}

		for j := 1; j < len(columns) && j < len(row.Data); j++ {
			col := columns[j]
			if col.Header == "Net" {
				setNetColor(dc, row.Data[j])
			} else {
				dc.SetRGB(col.ColorRGB[0], col.ColorRGB[1], col.ColorRGB[2])
			}
			drawSharpText(dc, row.Data[j], float64(col.XPosition), y)
		}

		y += float64(g.style.RowHeight)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}

	return buf.Bytes(), nil
}

// setNetColor picks green for gains, red for losses and gray for break-even
func setNetColor(dc *gg.Context, net string) {
	switch {
	case strings.HasPrefix(net, "+"):
		dc.SetRGB(0.4, 1.0, 0.4)
	case strings.HasPrefix(net, "-"):
		dc.SetRGB(1.0, 0.4, 0.4)
	default:
		dc.SetRGB(0.8, 0.8, 0.8)
	}
}

// drawMedal draws a colored circle with the rank inside
func drawMedal(dc *gg.Context, place, rank int, x, y float64) {
	medals := [3][3]float64{
		{1, 0.84, 0},       // Gold
		{0.75, 0.75, 0.75}, // Silver
		{0.8, 0.5, 0.2},    // Bronze
	}
	c := medals[place]
	dc.SetRGB(c[0], c[1], c[2])
	dc.DrawCircle(x, y-4, 6)
	dc.Fill()

	dc.SetRGB(0, 0, 0)
	if rankFace, err := loadFont(gobold.TTF, 9); err == nil {
		dc.SetFontFace(rankFace)
	}
	dc.DrawStringAnchored(fmt.Sprintf("%d", rank), x, y-5, 0.5, 0.4)
}

// drawSharpText draws text over a faint offset shadow
func drawSharpText(dc *gg.Context, text string, x, y float64) {
	dc.Push()
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawString(text, x+0.5, y+0.5)
	dc.Pop()

	dc.DrawString(text, x, y)
}

// loadFont loads a font from byte data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
