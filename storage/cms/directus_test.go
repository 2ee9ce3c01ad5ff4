package cms

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afthonios/catalog/core"
	"github.com/afthonios/catalog/core/course"
)

func newDirectus(t *testing.T, handler http.HandlerFunc) course.Repository {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewCourseRepository(core.CMSConfig{
		BaseURL:    srv.URL + "/",
		Token:      "secret",
		Collection: "courses",
		Timeout:    time.Second,
	}, srv.Client())
}

func TestCourseRepository_GetCourse(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		want     course.Course
		notFound bool
		wantErr  string
	}{
		{
			name:   "numeric id",
			status: http.StatusOK,
			body:   `{"data":{"id":7,"slug":"s","title":"T","locale":"fr","plan_md":"### Apprendre","gradient_dark_to":"#000"}}`,
			want:   course.Course{ID: "7", Slug: "s", Title: "T", Locale: "fr", PlanMD: "### Apprendre", GradientDarkTo: "#000"},
		},
		{
			name:   "string id",
			status: http.StatusOK,
			body:   `{"data":{"id":"7","title":"T"}}`,
			want:   course.Course{ID: "7", Title: "T"},
		},
		{name: "not found", status: http.StatusNotFound, body: `{"errors":[{"message":"Route doesn't exist."}]}`, notFound: true},
		{name: "forbidden", status: http.StatusForbidden, body: `{"errors":[{"message":"You don't have permission to access this."}]}`, notFound: true},
		{name: "null data", status: http.StatusOK, body: `{"data":null}`, notFound: true},
		{name: "server error", status: http.StatusInternalServerError, body: `{"errors":[{"message":"boom"}]}`, wantErr: "cms: 500 boom"},
		{name: "server error without body", status: http.StatusBadGateway, wantErr: "cms: 502 Bad Gateway"},
		{name: "invalid json", status: http.StatusOK, body: `<html>`, wantErr: "cms: decode /items/courses/7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newDirectus(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/items/courses/7", r.URL.Path)
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
				assert.Equal(t, courseFields, r.URL.Query().Get("fields"))
				w.WriteHeader(tt.status)
				_, _ = fmt.Fprint(w, tt.body)
			})

			got, err := repo.GetCourse(context.Background(), "7")
			switch {
			case tt.notFound:
				assert.Equal(t, course.ErrNotFound, errors.Cause(err))
			case tt.wantErr != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCourseRepository_ListCourses(t *testing.T) {
	repo := newDirectus(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/items/courses", r.URL.Path)
		assert.Equal(t, "-1", q.Get("limit"))
		assert.Equal(t, "fr", q.Get("filter[locale][_eq]"))
		assert.Equal(t, "collab", q.Get("filter[_or][0][title][_icontains]"))
		assert.Equal(t, "collab", q.Get("filter[_or][1][slug][_icontains]"))
		assert.Equal(t, "-date_updated,title", q.Get("sort"))
		_, _ = fmt.Fprint(w, `{"data":[{"id":1,"title":"A"},{"id":"b-2","title":"B"}]}`)
	})

	courses, err := repo.ListCourses(context.Background(), course.QueryFilter{
		Search:    "collab",
		Locale:    "fr",
		Orderings: core.ParseOrderings("-date_updated,title"),
	})
	require.NoError(t, err)
	assert.Equal(t, []course.Course{{ID: "1", Title: "A"}, {ID: "b-2", Title: "B"}}, courses)
}

func TestCourseRepository_ListCoursesForbidden(t *testing.T) {
	repo := newDirectus(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := repo.ListCourses(context.Background(), course.QueryFilter{})
	require.Error(t, err)
	apiErr, ok := errors.Cause(err).(APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestCourseRepository_Unauthorized(t *testing.T) {
	repo := newDirectus(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprint(w, `{"errors":[{"message":"Invalid user credentials."}]}`)
	})

	_, err := repo.GetCourse(context.Background(), "7")
	require.Error(t, err)
	assert.True(t, core.IsShutdown(err))
	assert.Equal(t, "cms: 401 Invalid user credentials.", err.Error())

	_, err = repo.ListCourses(context.Background(), course.QueryFilter{})
	assert.True(t, core.IsShutdown(err))
}

func TestCourseRepository_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	repo := NewCourseRepository(core.CMSConfig{BaseURL: srv.URL, Collection: "courses", Timeout: 20 * time.Millisecond}, nil)
	_, err := repo.GetCourse(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), err.Error())
}
