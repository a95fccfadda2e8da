// Package deepcopy detaches opaque Go payloads from the memory of the caller.
package deepcopy

import (
	"github.com/mitchellh/copystructure"
	"github.com/pkg/errors"
)

// Copy returns a deep copy of v.
func Copy(v any) (any, error) {
	if v == nil {
		return nil, nil //nolint:nilnil
	}
	x, err := copystructure.Copy(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to copy %T", v)
	}
	return x, nil
}
