package labels

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"

	"github.com/scovillecup/backend-scoville/internal/qr"
)

// Stock describes one physical label sheet geometry in millimetres.
// Positions follow the printed grid row-major: left to right, top to bottom.
type Stock struct {
	Name       string
	Cols       int
	Rows       int
	LabelW     float64
	LabelH     float64
	MarginLeft float64
	MarginTop  float64
	PitchX     float64
	PitchY     float64
}

// The two label stocks the competition prints on. Geometry is fixed by the
// physical sheets; changing it misaligns every printed batch.
var stocks = map[string]Stock{
	"l7160": {
		Name:       "l7160",
		Cols:       3,
		Rows:       7,
		LabelW:     63.5,
		LabelH:     38.1,
		MarginLeft: 7.25,
		MarginTop:  15.15,
		PitchX:     66.0,
		PitchY:     38.1,
	},
	"l7165": {
		Name:       "l7165",
		Cols:       2,
		Rows:       4,
		LabelW:     99.1,
		LabelH:     67.7,
		MarginLeft: 4.65,
		MarginTop:  13.0,
		PitchX:     101.6,
		PitchY:     67.7,
	},
}

// StockByName resolves a label stock by its name.
func StockByName(name string) (Stock, error) {
	stock, ok := stocks[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Stock{}, fmt.Errorf("unknown label stock %q", name)
	}
	return stock, nil
}

// StockNames lists the supported stocks in stable order.
func StockNames() []string {
	names := make([]string, 0, len(stocks))
	for name := range stocks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PerPage returns how many labels fit on one sheet.
func (s Stock) PerPage() int {
	return s.Cols * s.Rows
}

// Origin returns the top-left corner of the i-th label on its page.
func (s Stock) Origin(i int) (float64, float64) {
	pos := i % s.PerPage()
	col := pos % s.Cols
	row := pos / s.Cols
	return s.MarginLeft + float64(col)*s.PitchX, s.MarginTop + float64(row)*s.PitchY
}

// Item is one label cell: the sauce code plus its display name.
type Item struct {
	Code string
	Name string
}

// Generator renders sticker sheets. QR images are fetched from the external
// rendering endpoint; a fetch failure falls back to an empty QR frame so a
// flaky renderer never blocks a print run.
type Generator struct {
	QR         *qr.Builder
	HTTPClient *http.Client
	Log        zerolog.Logger
}

func (g *Generator) httpClient() *http.Client {
	if g.HTTPClient != nil {
		return g.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// Render produces one PDF with a label per item on the given stock.
func (g *Generator) Render(ctx context.Context, stock Stock, items []Item) ([]byte, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("no labels to render")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Scoville Cup sauce labels", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)

	perPage := stock.PerPage()
	for i, item := range items {
		if i%perPage == 0 {
			pdf.AddPage()
		}
		x, y := stock.Origin(i)
		g.drawLabel(ctx, pdf, stock, x, y, item)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render label pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) drawLabel(ctx context.Context, pdf *fpdf.Fpdf, stock Stock, x, y float64, item Item) {
	const pad = 3.0

	qrSize := stock.LabelH - 2*pad
	if qrSize > stock.LabelW/2 {
		qrSize = stock.LabelW / 2
	}
	qrX, qrY := x+pad, y+(stock.LabelH-qrSize)/2

	if png := g.fetchQR(ctx, item.Code); png != nil {
		name := "qr-" + item.Code
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
		pdf.ImageOptions(name, qrX, qrY, qrSize, qrSize, false, opts, 0, "")
	} else {
		pdf.Rect(qrX, qrY, qrSize, qrSize, "D")
	}

	textX := qrX + qrSize + pad
	textW := x + stock.LabelW - pad - textX

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(textX, y+pad)
	pdf.CellFormat(textW, 8, item.Code, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetXY(textX, y+pad+9)
	pdf.MultiCell(textW, 4, truncate(item.Name, 60), "", "L", false)
}

func (g *Generator) fetchQR(ctx context.Context, code string) []byte {
	if g.QR == nil {
		return nil
	}
	url, err := g.QR.ImageURL(code)
	if err != nil {
		g.Log.Warn().Err(err).Str("code", code).Msg("qr url failed, printing empty frame")
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	resp, err := g.httpClient().Do(req)
	if err != nil {
		g.Log.Warn().Err(err).Str("code", code).Msg("qr fetch failed, printing empty frame")
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.Log.Warn().Int("status", resp.StatusCode).Str("code", code).Msg("qr fetch failed, printing empty frame")
		return nil
	}
	png, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(png) == 0 {
		return nil
	}
	return png
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
