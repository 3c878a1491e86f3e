package web_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"roster/internal/back"
	"roster/internal/config"
	"roster/internal/store"
	"roster/internal/web"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestServer(t *testing.T) http.Handler {
	t.Helper()
	s := web.NewServer(back.New(store.NewMemory()), config.HTTPConfig{Addr: "127.0.0.1:0"})
	return s.Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func birthday(year int) int64 {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).Unix() * 1000
}

func playerJSON(name, race string, xp int64, year int) string {
	return fmt.Sprintf(
		`{"name":%q,"title":"The Tester","race":%q,"profession":"WARRIOR","birthday":%d,"experience":%d}`,
		name, race, birthday(year), xp,
	)
}

func decodePlayer(t *testing.T, rec *httptest.ResponseRecorder) back.Player {
	t.Helper()
	var p back.Player
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p), rec.Body.String())
	return p
}

func TestCreateAndGet(t *testing.T) {
	h := createTestServer(t)

	rec := do(t, h, http.MethodPost, "/rest/players", playerJSON("Ninelle", "Elf", 804, 1000))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	created := decodePlayer(t, rec)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, back.RaceElf, created.Race)
	assert.Equal(t, 3, created.Level)
	assert.Equal(t, int64(196), created.UntilNextLevel)
	assert.False(t, created.Banned)
	assert.Equal(t, birthday(1000), created.Birthday.Millis())

	rec = do(t, h, http.MethodGet, "/rest/players/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decodePlayer(t, rec))

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, k := range []string{"id", "name", "title", "race", "profession", "birthday", "banned", "experience", "level", "untilNextLevel"} {
		assert.Contains(t, raw, k)
	}
}

func TestCreateIgnoresDerivedFields(t *testing.T) {
	h := createTestServer(t)

	body := `{"id":42,"level":99,"untilNextLevel":0,` + strings.TrimPrefix(playerJSON("Ninelle", "ELF", 0, 1000), "{")
	rec := do(t, h, http.MethodPost, "/rest/players", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	p := decodePlayer(t, rec)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, 0, p.Level)
	assert.Equal(t, int64(100), p.UntilNextLevel)
}

func TestCreateRejected(t *testing.T) {
	h := createTestServer(t)

	for name, body := range map[string]string{
		"empty body":    "",
		"bad json":      "{",
		"unknown race":  playerJSON("Ninelle", "ENT", 0, 1000),
		"long name":     playerJSON("Ninelle the Wise", "ELF", 0, 1000),
		"born too soon": playerJSON("Ninelle", "ELF", 0, 99),
		"missing xp":    `{"name":"Ninelle","title":"t","race":"ELF","profession":"WARRIOR","birthday":0}`,
	} {
		rec := do(t, h, http.MethodPost, "/rest/players", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		assert.Contains(t, rec.Body.String(), "parameters aren't valid", name)
	}
}

func TestUpdate(t *testing.T) {
	h := createTestServer(t)
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/rest/players", playerJSON("Ninelle", "ELF", 804, 1000)).Code)

	rec := do(t, h, http.MethodPost, "/rest/players/1", `{"experience":500,"name":null,"id":7}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	p := decodePlayer(t, rec)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Ninelle", p.Name)
	assert.Equal(t, int64(500), p.Experience)
	assert.Equal(t, 2, p.Level)

	rec = do(t, h, http.MethodPost, "/rest/players/1", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/rest/players/abc", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ID isn't valid")

	rec = do(t, h, http.MethodPost, "/rest/players/999999", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetAndDeleteErrors(t *testing.T) {
	h := createTestServer(t)

	for _, id := range []string{"0", "1.5", "-3", "abc"} {
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/rest/players/"+id, "").Code, id)
		assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodDelete, "/rest/players/"+id, "").Code, id)
	}

	rec := do(t, h, http.MethodDelete, "/rest/players/999999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "wasn't found")

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/rest/players", playerJSON("Ninelle", "ELF", 804, 1000)).Code)
	rec = do(t, h, http.MethodDelete, "/rest/players/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/rest/players/1", "").Code)
}

func TestListAndCount(t *testing.T) {
	h := createTestServer(t)

	for i := 0; i < 7; i++ {
		body := playerJSON(fmt.Sprintf("Elf%d", i), "ELF", int64(i*1000), 500+i)
		require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/rest/players", body).Code)
	}
	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/rest/players", playerJSON("Ogrim", "ORC", 0, 800)).Code)

	list := func(query string) []back.Player {
		rec := do(t, h, http.MethodGet, "/rest/players?"+query, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var ret []back.Player
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ret))
		return ret
	}

	assert.Len(t, list(""), back.DefaultPageSize)
	assert.Len(t, list("race=elf&pageNumber=0"), 3)
	assert.Len(t, list("race=elf&pageNumber=1"), 3)
	assert.Len(t, list("race=elf&pageNumber=2"), 1)

	page := list("order=EXPERIENCE&pageSize=2&minExperience=1000")
	require.Len(t, page, 2)
	assert.Equal(t, "Elf1", page[0].Name)
	assert.Equal(t, "Elf2", page[1].Name)

	after := birthday(502)
	page = list(fmt.Sprintf("after=%d&pageSize=10&order=BIRTHDAY", after))
	require.Len(t, page, 5)
	assert.Equal(t, "Elf3", page[0].Name)

	rec := do(t, h, http.MethodGet, "/rest/players/count?race=ELF&name=elf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", rec.Body.String())

	rec = do(t, h, http.MethodGet, "/rest/players/count", "")
	assert.Equal(t, "8", rec.Body.String())

	for _, size := range []string{"2", "4"} {
		rec := do(t, h, http.MethodGet, "/rest/players?pageNumber=4611686018427387904&pageSize="+size, "")
		assert.Equal(t, http.StatusOK, rec.Code, size)
		assert.Equal(t, "[]", rec.Body.String(), size)
	}

	for _, query := range []string{"pageSize=0", "pageNumber=-1", "order=TITLE", "race=ENT", "banned=maybe", "minLevel=x", "after=yesterday"} {
		rec := do(t, h, http.MethodGet, "/rest/players?"+query, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := createTestServer(t)
	do(t, h, http.MethodGet, "/rest/players/count", "")

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "roster_player_operations_total")
}

func TestServeReturnsWhenDone(t *testing.T) {
	s := web.NewServer(back.New(store.NewMemory()), config.HTTPConfig{Addr: "127.0.0.1:0"})

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go s.Serve(&wg, done)
	close(done)

	stopped := make(chan struct{})
	go func() {
		wg.Wait()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after done was closed")
	}
}
