package cms

import (
	"context"
	"os"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/afthonios/catalog/core/course"
)

type fixtureFile struct {
	Courses []course.Course `yaml:"courses"`
}

type memRepository struct {
	mutex   sync.RWMutex
	courses []course.Course
}

var _ course.Repository = (*memRepository)(nil)

// NewMemRepository returns a read-only repository holding courses.
func NewMemRepository(courses ...course.Course) course.Repository {
	cs := make([]course.Course, len(courses))
	copy(cs, courses)
	return &memRepository{courses: cs}
}

// NewFixtureRepository loads the courses of a YAML fixture file, eg.
//
//	courses:
//	  - id: "1"
//	    title: Mieux collaborer
//	    locale: fr
//	    plan_md: |
//	      ### DÉCOUVRIR
//	      a) ...
func NewFixtureRepository(path string) (course.Repository, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cms: open fixtures")
	}
	//goland:noinspection GoUnhandledErrorResult
	defer f.Close()

	var file fixtureFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, errors.Wrapf(err, "cms: decode fixtures %s", path)
	}

	seen := make(map[string]bool, len(file.Courses))
	for _, c := range file.Courses {
		if c.ID == "" {
			return nil, errors.Errorf("cms: fixtures %s: course %q has no id", path, c.Title)
		}
		if seen[c.ID] {
			return nil, errors.Errorf("cms: fixtures %s: duplicate course id %q", path, c.ID)
		}
		seen[c.ID] = true
	}
	return NewMemRepository(file.Courses...), nil
}

func (repo *memRepository) GetCourse(_ context.Context, id string) (course.Course, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	for _, c := range repo.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return course.Course{}, errors.Wrapf(course.ErrNotFound, "cms: course %q", id)
}

func (repo *memRepository) ListCourses(_ context.Context, filter course.QueryFilter) ([]course.Course, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()
	return course.Apply(repo.courses, filter), nil
}
