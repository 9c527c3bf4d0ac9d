package labels

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scovillecup/backend-scoville/internal/qr"
)

func TestStockByName(t *testing.T) {
	stock, err := StockByName("L7160")
	require.NoError(t, err)
	assert.Equal(t, 21, stock.PerPage())

	stock, err = StockByName("l7165")
	require.NoError(t, err)
	assert.Equal(t, 8, stock.PerPage())

	_, err = StockByName("a4-full")
	require.Error(t, err)
}

func TestStockOriginGrid(t *testing.T) {
	stock, err := StockByName("l7160")
	require.NoError(t, err)

	x, y := stock.Origin(0)
	assert.InDelta(t, stock.MarginLeft, x, 1e-9)
	assert.InDelta(t, stock.MarginTop, y, 1e-9)

	// Row-major: label 3 starts the second row.
	x, y = stock.Origin(3)
	assert.InDelta(t, stock.MarginLeft, x, 1e-9)
	assert.InDelta(t, stock.MarginTop+stock.PitchY, y, 1e-9)

	// Position repeats on the next page.
	x2, y2 := stock.Origin(stock.PerPage() + 3)
	assert.InDelta(t, x, x2, 1e-9)
	assert.InDelta(t, y, y2, 1e-9)
}

func TestRenderProducesPDF(t *testing.T) {
	gen := &Generator{} // no QR builder: empty frames instead of images

	items := make([]Item, 0, 25)
	for i := 0; i < 25; i++ {
		items = append(items, Item{Code: fmt.Sprintf("H%03d", i+1), Name: "Lava Surprise"})
	}

	stock, err := StockByName("l7160")
	require.NoError(t, err)

	pdf, err := gen.Render(context.Background(), stock, items)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderRejectsEmptyBatch(t *testing.T) {
	gen := &Generator{}
	stock, err := StockByName("l7165")
	require.NoError(t, err)

	_, err = gen.Render(context.Background(), stock, nil)
	require.Error(t, err)
}

func TestRenderFallsBackWhenQRUnavailable(t *testing.T) {
	stock, err := StockByName("l7165")
	require.NoError(t, err)
	items := []Item{{Code: "H001", Name: "Lava Surprise"}}

	// Builder misconfigured: ImageURL errors, labels still print with frames.
	gen := &Generator{QR: &qr.Builder{}}
	pdf, err := gen.Render(context.Background(), stock, items)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))

	// Renderer unreachable: fetch fails, labels still print with frames.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	gen = &Generator{QR: &qr.Builder{RenderBaseURL: srv.URL, PublicBaseURL: "https://scovillecup.example"}}
	pdf, err = gen.Render(context.Background(), stock, items)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestTruncateCountsRunes(t *testing.T) {
	assert.Equal(t, "chili", truncate("chili", 60))
	assert.Equal(t, "jalapeñ…", truncate("jalapeño grande", 8))
	// Multibyte names never get split mid-rune.
	assert.Equal(t, "ぴりぴ…", truncate("ぴりぴりソース", 4))
}
