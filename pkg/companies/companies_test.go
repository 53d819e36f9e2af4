package companies

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
}

func TestLoadMergesShards(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "companies_health.json", `{
		"Healthcare": [
			{"name": "Merck", "ticker": "mrk", "investorRelationsUrl": "https://example.com/mrk"},
			{"name": "Private Clinic"}
		]
	}`)
	writeFile(t, dir, "companies_tech.json", `{
		"Healthcare": [{"name": "Medtronic", "ticker": "MDT"}],
		"Technology": [{"name": "Apple", "ticker": "AAPL", "pressFeedUrl": "https://example.com/rss"}]
	}`)

	store, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"Healthcare", "Technology"}, store.Sectors())

	health := store.SectorCompanies("Healthcare")
	require.Len(t, health, 3)
	assert.Equal(t, "MRK", health[0].Ticker, "tickers are uppercased")
	assert.Equal(t, "https://example.com/mrk", health[0].InvestorRelationsURL)

	assert.Equal(t, []string{"MRK", "MDT"}, store.SectorTickers("Healthcare"))
	assert.Equal(t, []string{"Private Clinic"}, store.WithoutTicker("Healthcare"))
	assert.Equal(t, map[string]string{"AAPL": "Apple"}, store.TickerToName("Technology"))
	assert.Equal(t, "https://example.com/rss", store.SectorCompanies("Technology")[0].PressFeedURL)
}

func TestLoadFallsBackToSingleFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "companies.json", `{"Energy": [{"name": "Exxon", "ticker": "XOM"}]}`)

	store, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Energy"}, store.Sectors())
	assert.Equal(t, []string{"XOM"}, store.SectorTickers("Energy"))
}

func TestLoadSkipsNamelessEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "companies.json", `{"Energy": [{"ticker": "XOM"}, {"name": "Chevron", "ticker": "CVX"}]}`)

	store, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, store.SectorCompanies("Energy"), 1)
	assert.Equal(t, "Chevron", store.SectorCompanies("Energy")[0].Name)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "companies_bad.json", `{not json`)
		_, err := Load(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "companies_bad.json")
	})
}

func TestUnknownSectorIsEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "companies.json", `{"Energy": [{"name": "Exxon", "ticker": "XOM"}]}`)

	store, err := Load(dir)
	require.NoError(t, err)
	assert.Empty(t, store.SectorCompanies("Utilities"))
	assert.Empty(t, store.SectorTickers("Utilities"))
}
