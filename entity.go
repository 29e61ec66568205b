package particles

import (
	"github.com/TheBitDrifter/table"
	iter_util "github.com/TheBitDrifter/util/iter"
)

var _ Entity = &entity{}

// entity is a handle onto a row; it carries no component data of its own.
type entity struct {
	table.Entry
}

func (e *entity) Components() []Component {
	elementTypes := iter_util.Collect(e.Table().ElementTypes())
	comps := make([]Component, len(elementTypes))
	for i, et := range elementTypes {
		comps[i] = et
	}
	return comps
}
