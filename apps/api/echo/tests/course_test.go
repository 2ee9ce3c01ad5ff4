package tests

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/afthonios/catalog/core/course"
	"github.com/afthonios/catalog/core/plan"
)

func Test_courseApi_query(t *testing.T) {
	path := func(search, locale, ordering string) string {
		v := make(url.Values)
		if search != "" {
			v.Add("search", search)
		}
		if locale != "" {
			v.Add("locale", locale)
		}
		if ordering != "" {
			v.Add("ordering", ordering)
		}
		return "/v1/courses?" + v.Encode()
	}
	summaries := func(ids ...string) []byte {
		list := make([]course.Summary, 0, len(ids))
		for _, id := range ids {
			list = append(list, getCourse(t, id).Summary())
		}
		return marshallObj(t, list)
	}

	tests := []httpTest{
		{name: "all", path: path("", "", ""), wantCode: http.StatusOK, wantData: summaries("1", "2", "3")},
		{name: "search title", path: path("COLLAB", "", ""), wantCode: http.StatusOK, wantData: summaries("1")},
		{name: "search slug", path: path("teamwork", "", ""), wantCode: http.StatusOK, wantData: summaries("2")},
		{name: "search nothing", path: path("python", "", ""), wantCode: http.StatusOK, wantData: []byte(`[]`)},
		{name: "locale", path: path("", "EN", ""), wantCode: http.StatusOK, wantData: summaries("2")},
		{name: "search and locale", path: path("les", "fr", ""), wantCode: http.StatusOK, wantData: summaries("3")},
		{name: "ordering", path: path("", "", "-title"), wantCode: http.StatusOK, wantData: summaries("2", "1", "3")},
		{name: "ordering updated", path: path("", "", "date_updated"), wantCode: http.StatusOK, wantData: summaries("2", "3", "1")},
		{name: "ordering slug", path: path("", "", "slug"), wantCode: http.StatusOK, wantData: summaries("3", "1", "2")},
		{name: "unknown ordering", path: path("", "", "-locale,-status"), wantCode: http.StatusOK, wantData: summaries("1", "2", "3")},
		{
			name:     "invalid locale",
			path:     path("", "de", ""),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"locale": "la langue doit être l'une de : fr, en"}`),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.method = http.MethodGet
			checkCodeAndData(t, tt, serve(app, tt))
		})
	}
}

func Test_courseApi_plan(t *testing.T) {
	tree := func(id, locale string) []byte {
		return marshallObj(t, plan.Render(getCourse(t, id).PlanInput(locale)))
	}

	tests := []httpTest{
		{name: "course locale", path: "/v1/courses/1/plan", wantCode: http.StatusOK, wantData: tree("1", "")},
		{name: "english course", path: "/v1/courses/2/plan", wantCode: http.StatusOK, wantData: tree("2", "")},
		{name: "locale override", path: "/v1/courses/1/plan?locale=en", wantCode: http.StatusOK, wantData: tree("1", "en")},
		{name: "legacy plan", path: "/v1/courses/3/plan", wantCode: http.StatusOK, wantData: tree("3", "")},
		{name: "trailing slash", path: "/v1/courses/2/plan/", wantCode: http.StatusOK, wantData: tree("2", "")},
		{name: "not found", path: "/v1/courses/404/plan", wantCode: http.StatusNotFound, wantData: marshallObj(t, errNotFound)},
		{name: "blank id", path: "/v1/courses/%20/plan", wantCode: http.StatusBadRequest, wantData: []byte(`{"id": "id is required"}`)},
		{
			name:     "invalid locale",
			path:     "/v1/courses/1/plan?locale=de",
			header:   map[string]string{"Accept-Language": "en-GB"},
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"locale": "locale must be one of: fr, en"}`),
		},
		{
			name:     "unknown format",
			path:     "/v1/courses/1/plan?format=xml",
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, httpErr{Error: "format must be one of: json, html"}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.method = http.MethodGet
			checkCodeAndData(t, tt, serve(app, tt))
		})
	}
}

func Test_courseApi_planHTML(t *testing.T) {
	rec := serve(app, httpTest{method: http.MethodGet, path: "/v1/courses/1/plan?format=html"})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<section id="course-plan-1" class="course-plan course-plan--gradient is-visible" lang="fr"`)
	assert.Contains(t, body, `style="--plan`)
}

func Test_courseApi_cmsDown(t *testing.T) {
	tests := []httpTest{
		{name: "query", path: "/v1/courses", wantCode: http.StatusInternalServerError, wantData: marshallObj(t, errServer)},
		{name: "plan", path: "/v1/courses/1/plan", wantCode: http.StatusInternalServerError, wantData: marshallObj(t, errServer)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.method = http.MethodGet
			checkCodeAndData(t, tt, serve(brokenApp, tt))
		})
	}
}

func Test_courseApi_cmsTokenRejected(t *testing.T) {
	srv := newServer(rejectingRepository{})
	tt := httpTest{name: "plan", method: http.MethodGet, path: "/v1/courses/1/plan", wantCode: http.StatusInternalServerError, wantData: marshallObj(t, errServer)}
	checkCodeAndData(t, tt, serve(srv, tt))

	select {
	case <-srv.ShutdownSignal():
	default:
		t.Error("server did not signal shutdown")
	}

	// a server error that does not compromise the configuration keeps the server running
	srv = newServer(brokenRepository{})
	serve(srv, tt)
	select {
	case sig := <-srv.ShutdownSignal():
		t.Errorf("unexpected shutdown signal %v", sig)
	default:
	}
}

func Test_requestID(t *testing.T) {
	rec := serve(app, httpTest{method: http.MethodGet, path: "/v1/courses"})

	assert.Equal(t, http.StatusOK, rec.Code)
	_, err := uuid.Parse(rec.Header().Get(echo.HeaderXRequestID))
	assert.NoError(t, err)
}
