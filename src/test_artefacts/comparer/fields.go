package comparer

import (
	"activitytracker/src/domain/entities"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func IgnoreFieldsFor[T any](fields ...string) cmp.Option {
	var t T
	return cmpopts.IgnoreFields(t, fields...)
}

// UserGraph compara grafos de usuário sem seguir ActivityRequest.User, que
// aponta de volta para a raiz.
func UserGraph() cmp.Option {
	return cmp.Options{
		IgnoreFieldsFor[entities.ActivityRequest]("User"),
		cmpopts.EquateEmpty(),
		TimeWithinTolerance(1),
	}
}
