package inmemdb

import (
	"sync"

	"github.com/jltacademy/backend/core/course"
	"github.com/jltacademy/backend/core/slider"
	"github.com/jltacademy/backend/core/user"
	"github.com/jltacademy/backend/core/webinar"
)

// DB is an in-memory stand-in for the SQL store, used in tests.
type (
	DB struct {
		user    *userTable
		course  *courseTable
		webinar *webinarTable
		slider  *sliderTable
	}

	userTable struct {
		sync.RWMutex
		seq   int
		table map[int]*user.User
	}

	courseTable struct {
		sync.RWMutex
		seq   int
		table map[int]*course.Course
	}

	webinarTable struct {
		sync.RWMutex
		seq   int
		table map[int]*webinar.Webinar
	}

	sliderTable struct {
		sync.RWMutex
		seq   int
		table map[int]*slider.Item
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:    &userTable{table: make(map[int]*user.User)},
		course:  &courseTable{table: make(map[int]*course.Course)},
		webinar: &webinarTable{table: make(map[int]*webinar.Webinar)},
		slider:  &sliderTable{table: make(map[int]*slider.Item)},
	}
	return db, nil
}
