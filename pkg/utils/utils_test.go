package utils_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cinema-api/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ticketForm struct {
	Row          int    `json:"row" validate:"gte=1"`
	MovieSession string `json:"movie_session" validate:"required,uuid"`
}

type orderForm struct {
	Tickets []ticketForm `json:"tickets" validate:"dive"`
}

func TestValidateStruct_ReportsJSONPaths(t *testing.T) {
	errs := utils.ValidateStruct(&orderForm{Tickets: []ticketForm{
		{Row: 1, MovieSession: uuid.NewString()},
		{Row: 0, MovieSession: "nope"},
	}})

	assert.Equal(t, map[string]string{
		"tickets[1].row":           "Must be at least 1",
		"tickets[1].movie_session": "Must be a valid UUID",
	}, errs)
}

func TestValidateStruct_Valid(t *testing.T) {
	assert.Nil(t, utils.ValidateStruct(&orderForm{}))
}

func TestFormatValidationErrors_Sorted(t *testing.T) {
	got := utils.FormatValidationErrors(map[string]string{
		"seat": "Must be at least 1",
		"row":  "This field is required",
	})

	assert.Equal(t, "row: This field is required; seat: Must be at least 1", got)
}

func TestParseUUIDList(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	ids, err := utils.ParseUUIDList(a.String() + ", " + b.String() + ",")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	ids, err = utils.ParseUUIDList("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = utils.ParseUUIDList(a.String() + ",1")
	assert.Error(t, err)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 3, utils.ParseInt("3", 1))
	assert.Equal(t, 1, utils.ParseInt("0", 1))
	assert.Equal(t, 1, utils.ParseInt("x", 1))
	assert.Equal(t, 10, utils.ParseInt("", 10))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "the-matrix-reloaded", utils.Slugify("  The Matrix: Reloaded! "))
	assert.Equal(t, "", utils.Slugify("???"))
}

func TestSaveImage(t *testing.T) {
	dir := t.TempDir()

	rel, err := utils.SaveImage(dir, "movies", "Dune Part Two", "poster.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rel, "movies/dune-part-two-"), rel)
	assert.True(t, strings.HasSuffix(rel, ".png"), rel)

	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
}

func TestSaveImage_RejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()

	_, err := utils.SaveImage(dir, "movies", "Dune", "poster.exe", strings.NewReader("x"))
	assert.ErrorIs(t, err, utils.ErrUnsupportedImage)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, utils.CalculateTotalPages(0, 10))
	assert.Equal(t, 1, utils.CalculateTotalPages(10, 10))
	assert.Equal(t, 2, utils.CalculateTotalPages(11, 10))
}

func TestLoadConfig_BrokerAndCORS(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://cinema.test,")
	t.Setenv("AMQP_DIAL_TIMEOUT", "500ms")

	config, err := utils.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"http://localhost:3000", "https://cinema.test"}, config.App.CORSOrigins)
	assert.Equal(t, 500*time.Millisecond, config.Broker.DialTimeout)
	assert.Equal(t, 3*time.Second, config.Broker.PublishTimeout)
	assert.Equal(t, "order.created", config.Broker.Queue)
}
