package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/afthonios/catalog/core"
	"github.com/afthonios/catalog/core/course"
)

var courseFields = strings.Join([]string{
	"id", "slug", "title", "locale", "status", "plan_md",
	"gradient_light_from", "gradient_light_to", "gradient_dark_from", "gradient_dark_to",
	"foreground_light", "foreground_dark", "date_updated",
}, ",")

// APIError is a non successful response of the CMS.
type APIError struct {
	StatusCode int
	Message    string
}

func (err APIError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("cms: %d %s", err.StatusCode, http.StatusText(err.StatusCode))
	}
	return fmt.Sprintf("cms: %d %s", err.StatusCode, err.Message)
}

type courseRepository struct {
	baseURL    string
	token      string
	collection string
	timeout    time.Duration
	client     *http.Client
}

var _ course.Repository = (*courseRepository)(nil)

// NewCourseRepository returns a repository reading courses from the items API of a Directus CMS.
// A nil client means http.DefaultClient.
func NewCourseRepository(conf core.CMSConfig, client *http.Client) course.Repository {
	if client == nil {
		client = http.DefaultClient
	}
	return &courseRepository{
		baseURL:    strings.TrimRight(conf.BaseURL, "/"),
		token:      conf.Token,
		collection: conf.Collection,
		timeout:    conf.Timeout,
		client:     client,
	}
}

// itemID accepts both numeric and string primary keys.
type itemID string

func (id *itemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = itemID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = itemID(n.String())
	return nil
}

type courseItem struct {
	ID itemID `json:"id"`
	course.Course
}

func (it courseItem) toCourse() course.Course {
	c := it.Course
	c.ID = string(it.ID)
	return c
}

func (repo *courseRepository) GetCourse(ctx context.Context, id string) (course.Course, error) {
	var item *courseItem
	path := "/items/" + url.PathEscape(repo.collection) + "/" + url.PathEscape(id)
	err := repo.get(ctx, path, url.Values{"fields": {courseFields}}, &item)
	if err != nil {
		if apiErr, ok := errors.Cause(err).(APIError); ok {
			// unknown items and items hidden to the token are both reported as forbidden by Directus
			if apiErr.StatusCode == http.StatusNotFound || apiErr.StatusCode == http.StatusForbidden {
				return course.Course{}, errors.Wrapf(course.ErrNotFound, "cms: course %q", id)
			}
		}
		return course.Course{}, err
	}
	if item == nil {
		return course.Course{}, errors.Wrapf(course.ErrNotFound, "cms: course %q", id)
	}
	return item.toCourse(), nil
}

func (repo *courseRepository) ListCourses(ctx context.Context, filter course.QueryFilter) ([]course.Course, error) {
	query := url.Values{
		"fields": {courseFields},
		"limit":  {"-1"},
	}
	if filter.Search != "" {
		query.Set("filter[_or][0][title][_icontains]", filter.Search)
		query.Set("filter[_or][1][slug][_icontains]", filter.Search)
	}
	if filter.Locale != "" {
		query.Set("filter[locale][_eq]", filter.Locale)
	}
	if len(filter.Orderings) > 0 {
		sorts := make([]string, 0, len(filter.Orderings))
		for _, ord := range filter.Orderings {
			sorts = append(sorts, ord.String())
		}
		query.Set("sort", strings.Join(sorts, ","))
	}

	var items []courseItem
	if err := repo.get(ctx, "/items/"+url.PathEscape(repo.collection), query, &items); err != nil {
		return nil, err
	}
	courses := make([]course.Course, 0, len(items))
	for _, it := range items {
		courses = append(courses, it.toCourse())
	}
	return courses, nil
}

// get fetches path and decodes the data member of the response envelope into dst.
func (repo *courseRepository) get(ctx context.Context, path string, query url.Values, dst interface{}) error {
	if repo.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, repo.timeout)
		defer cancel()
	}

	endpoint := repo.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "cms: new request")
	}
	req.Header.Set("Accept", "application/json")
	if repo.token != "" {
		req.Header.Set("Authorization", "Bearer "+repo.token)
	}

	resp, err := repo.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "cms: GET %s", path)
	}
	//goland:noinspection GoUnhandledErrorResult
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "cms: read %s", path)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		// the configured token is invalid or expired: no request can succeed until it is replaced
		return errors.WithStack(core.NewShutdownError(APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)}.Error()))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.WithStack(APIError{StatusCode: resp.StatusCode, Message: errorMessage(body)})
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errors.Wrapf(err, "cms: decode %s", path)
	}
	if len(envelope.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		return errors.Wrapf(err, "cms: decode %s data", path)
	}
	return nil
}

// errorMessage extracts the first message of a Directus error body.
func errorMessage(body []byte) string {
	var resp struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Errors) == 0 {
		return ""
	}
	return resp.Errors[0].Message
}
