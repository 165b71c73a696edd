package core_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/JonMunkholm/laptops/internal/codec"
	"github.com/JonMunkholm/laptops/internal/config"
	"github.com/JonMunkholm/laptops/internal/core"
)

const dellLine = "Dell;15.6;1920x1080;Matte;Nie;i5;4;2.4GHz;8GB;256GB;SSD;Intel;2GB;Win10;Tak;\n"

func testConfig() *config.Config {
	return &config.Config{
		Load: config.LoadConfig{MaxConcurrent: 2, MaxWaitTime: time.Second, Timeout: 5 * time.Second},
		Catalog: config.CatalogConfig{
			Validation: "strict",
			PageSize:   10,
			ExportName: "t2_katalog",
		},
	}
}

func newService(t *testing.T) *core.Service {
	t.Helper()
	svc, err := core.NewService(testConfig())
	require.NoError(t, err)
	return svc
}

func catalog(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "M%d;15;1920x1080;Matte;Nie;i5;4;2GHz;8GB;256GB;SSD;Intel;2GB;Win10;Tak;\n", i)
	}
	return b.String()
}

// gatedReader blocks its first Read until release is closed.
type gatedReader struct {
	started chan struct{}
	release chan struct{}
	r       io.Reader
	once    bool
}

func newGatedReader(s string) *gatedReader {
	return &gatedReader{
		started: make(chan struct{}),
		release: make(chan struct{}),
		r:       strings.NewReader(s),
	}
}

func (g *gatedReader) Read(p []byte) (int, error) {
	if !g.once {
		g.once = true
		close(g.started)
		<-g.release
	}
	return g.r.Read(p)
}

func TestNewService_InvalidMode(t *testing.T) {
	cfg := testConfig()
	cfg.Catalog.Validation = "lenient"
	_, err := core.NewService(cfg)
	assert.Error(t, err)
}

func TestService_LoadText(t *testing.T) {
	svc := newService(t)

	res, err := svc.LoadFrom(context.Background(), "", "t2_katalog.txt", strings.NewReader(dellLine))
	require.NoError(t, err)
	assert.Equal(t, "txt", res.Format)
	assert.Equal(t, 1, res.Rows)
	assert.Equal(t, 0, res.InvalidRows)
	assert.NotEmpty(t, res.LoadID)
	assert.Equal(t, svc.Store().Generation(), res.Generation)

	page := svc.Page()
	require.Len(t, page.Rows, 1)
	assert.Equal(t, 0, page.Rows[0].Row)
	assert.Equal(t, 1, page.Rows[0].Record.ID)
	assert.Equal(t, "Dell", page.Rows[0].Record.Manufacturer)
}

func TestService_LoadCountsInvalidRows(t *testing.T) {
	svc := newService(t)

	res, err := svc.LoadFrom(context.Background(), "txt", "", strings.NewReader(dellLine+"Bad Name;;;;x;;four;\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows, "invalid rows are loaded")
	assert.Equal(t, 1, res.InvalidRows)
}

func TestService_LoadReportsReplacedBytes(t *testing.T) {
	svc := newService(t)

	res, err := svc.LoadFrom(context.Background(), "txt", "", strings.NewReader("\xEF\xBB\xBFPrzek\xB9tna;\xFF;\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, res.ReplacedBytes, "the byte order mark is not counted")

	rec := svc.Store().Snapshot()[0]
	assert.Equal(t, "Przek?tna", rec.Manufacturer)
	assert.Equal(t, "?", rec.ScreenDiagonal)
}

func TestService_ParseFailureKeepsCollection(t *testing.T) {
	svc := newService(t)
	_, err := svc.LoadFrom(context.Background(), "txt", "", strings.NewReader(dellLine))
	require.NoError(t, err)
	gen := svc.Store().Generation()

	_, err = svc.LoadFrom(context.Background(), "xml", "", strings.NewReader("<laptops><laptop id=\"1\"></laptop></laptops>"))
	assert.ErrorIs(t, err, core.ErrParseMalformed)
	assert.Equal(t, "FILE001", core.MapError(err).Code)

	assert.Equal(t, gen, svc.Store().Generation())
	assert.Equal(t, 1, svc.Store().Len())
}

func TestService_UnknownFormat(t *testing.T) {
	svc := newService(t)
	_, err := svc.LoadFrom(context.Background(), "", "catalog.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, core.ErrUnknownFormat)
}

func TestService_ExportOnEmpty(t *testing.T) {
	svc := newService(t)

	var buf bytes.Buffer
	err := svc.Export(context.Background(), "txt", &buf)
	assert.ErrorIs(t, err, core.ErrExportOnEmpty)
	assert.Zero(t, buf.Len(), "nothing written")
	assert.Equal(t, "Load a source file first", core.MapError(err).Message)
}

func TestService_ExportText(t *testing.T) {
	svc := newService(t)
	_, err := svc.LoadFrom(context.Background(), "txt", "", strings.NewReader(dellLine))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), "txt", &buf))
	assert.Equal(t, dellLine, buf.String())

	name, err := svc.ExportFileName("txt")
	require.NoError(t, err)
	assert.Equal(t, "t2_katalog.txt", name)

	name, err = svc.ExportFileName("xml")
	require.NoError(t, err)
	assert.Equal(t, "t2_katalog.xml", name)
}

func TestService_TextToXMLAndBack(t *testing.T) {
	svc := newService(t)
	_, err := svc.LoadFrom(context.Background(), "txt", "", strings.NewReader(catalog(3)))
	require.NoError(t, err)
	before := svc.Store().Snapshot()

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), "xml", &buf))

	_, err = svc.LoadFrom(context.Background(), "xml", "", &buf)
	require.NoError(t, err)
	assert.Equal(t, before, svc.Store().Snapshot())
}

func TestService_ClearedRowSurvivesTextReload(t *testing.T) {
	svc := newService(t)
	empties := strings.Repeat(";", 14)
	_, err := svc.LoadFrom(context.Background(), "txt", "", strings.NewReader("Dell;"+empties+"\nHP;"+empties+"\n"))
	require.NoError(t, err)

	_, err = svc.UpdateField(context.Background(), 0, "manufacturer", "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(context.Background(), "txt", &buf))
	assert.Equal(t, ";"+empties+"\nHP;"+empties+"\n", buf.String())

	res, err := svc.LoadFrom(context.Background(), "txt", "", &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Rows)

	records := svc.Store().Snapshot()
	assert.Equal(t, core.Record{ID: 1}, records[0])
	assert.Equal(t, "HP", records[1].Manufacturer)
}

func TestService_UpdateField(t *testing.T) {
	svc := newService(t)
	_, err := svc.LoadFrom(context.Background(), "txt", "", strings.NewReader(dellLine))
	require.NoError(t, err)

	_, err = svc.UpdateField(context.Background(), 0, "diskType", "FOO")
	assert.ErrorIs(t, err, core.ErrValidationRejected)
	assert.Equal(t, "VAL001", core.MapError(err).Code)
	assert.Equal(t, "SSD", svc.Store().Snapshot()[0].DiskType)

	res, err := svc.UpdateField(context.Background(), 0, "diskType", "HDD")
	require.NoError(t, err)
	assert.Equal(t, &core.UpdateResult{Row: 0, Field: "diskType", OldValue: "SSD", NewValue: "HDD"}, res)

	_, err = svc.UpdateField(context.Background(), 0, "floppy", "x")
	assert.ErrorIs(t, err, core.ErrUnknownField)
}

func TestService_EditPreservesPageReloadResets(t *testing.T) {
	svc := newService(t)
	_, err := svc.LoadFrom(context.Background(), "txt", "", strings.NewReader(catalog(25)))
	require.NoError(t, err)

	require.NoError(t, svc.Navigate(core.NavNext, 0))
	require.Equal(t, 1, svc.Page().State.Index)

	_, err = svc.UpdateField(context.Background(), 12, "ramSize", "16GB")
	require.NoError(t, err)
	page := svc.Page()
	assert.Equal(t, 1, page.State.Index, "edit keeps the page")
	assert.Equal(t, 10, page.Rows[0].Row)
	assert.Equal(t, "16GB", page.Rows[2].Record.RAMSize)

	_, err = svc.UpdateField(context.Background(), 12, "cpuCores", "many")
	require.Error(t, err)
	assert.Equal(t, 1, svc.Page().State.Index, "rejection keeps the page")

	_, err = svc.LoadFrom(context.Background(), "txt", "", strings.NewReader(catalog(25)))
	require.NoError(t, err)
	assert.Equal(t, 0, svc.Page().State.Index, "reload resets the page")
}

func TestService_Navigate(t *testing.T) {
	svc := newService(t)
	_, err := svc.LoadFrom(context.Background(), "txt", "", strings.NewReader(catalog(45)))
	require.NoError(t, err)

	require.NoError(t, svc.Navigate(core.NavLast, 0))
	assert.Equal(t, 4, svc.Page().State.Index)
	assert.Len(t, svc.Page().Rows, 5)

	require.NoError(t, svc.Navigate(core.NavGoto, 2))
	assert.Equal(t, 1, svc.Page().State.Index)

	require.NoError(t, svc.Navigate(core.NavSize, 20))
	assert.Equal(t, 20, svc.Page().State.Size)
	assert.Equal(t, 0, svc.Page().State.Index)

	assert.ErrorIs(t, svc.Navigate(core.NavSize, 15), core.ErrInvalidNavigation)
	assert.ErrorIs(t, svc.Navigate("sideways", 0), core.ErrInvalidNavigation)
	assert.Equal(t, "PAGE001", core.MapError(svc.Navigate("sideways", 0)).Code)
}

func TestService_StaleLoadDiscarded(t *testing.T) {
	svc := newService(t)
	slow := newGatedReader(catalog(3))

	type outcome struct {
		res *core.LoadResult
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := svc.LoadFrom(context.Background(), "txt", "", slow)
		done <- outcome{res, err}
	}()
	<-slow.started

	res, err := svc.LoadFrom(context.Background(), "txt", "", strings.NewReader(dellLine))
	require.NoError(t, err)

	close(slow.release)
	first := <-done
	assert.ErrorIs(t, first.err, core.ErrStaleLoad)
	assert.Nil(t, first.res)

	assert.Equal(t, res.Generation, svc.Store().Generation())
	assert.Equal(t, 1, svc.Store().Len(), "the load started last wins")
}

func TestService_LoadTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.Load.Timeout = 20 * time.Millisecond
	svc, err := core.NewService(cfg)
	require.NoError(t, err)

	slow := newGatedReader(dellLine)
	defer close(slow.release)

	_, err = svc.LoadFrom(context.Background(), "txt", "", slow)
	require.Error(t, err)
	assert.Equal(t, "LOAD003", core.MapError(err).Code)
	assert.True(t, svc.Store().Empty())
}

func TestService_TimedOutLoadHoldsSlotUntilCodecReturns(t *testing.T) {
	cfg := testConfig()
	cfg.Load.Timeout = 20 * time.Millisecond
	svc, err := core.NewService(cfg)
	require.NoError(t, err)

	slow := newGatedReader(dellLine)
	_, err = svc.LoadFrom(context.Background(), "txt", "", slow)
	require.Error(t, err)
	assert.Equal(t, 1, svc.Status().Loads.Active, "codec is still reading")

	close(slow.release)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, svc.WaitForLoads(ctx))
	assert.Equal(t, 0, svc.Status().Loads.Active)
	assert.True(t, svc.Store().Empty(), "a timed out parse never commits")
}

func TestService_StatusAndDrain(t *testing.T) {
	svc := newService(t)
	_, err := svc.LoadFrom(context.Background(), "txt", "", strings.NewReader(dellLine))
	require.NoError(t, err)

	st := svc.Status()
	assert.Equal(t, 1, st.Rows)
	assert.Equal(t, "strict", st.Validation)
	assert.Equal(t, []string{"txt", "xml"}, st.Formats)
	assert.Equal(t, 0, st.Loads.Active)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, svc.WaitForLoads(ctx))
}
