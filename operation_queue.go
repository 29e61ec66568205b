package particles

import (
	"github.com/rotisserie/eris"
)

type operation struct {
	typ    operationType
	amount int
	comps  []Component
	values []Bundle
}

type operationType int

const (
	opCreate operationType = iota
	opInsert
)

// opQueue holds inserts requested while a cursor had the storage borrowed.
type opQueue struct {
	createOps []operation
}

func newOpQueue() opQueue {
	return opQueue{}
}

func (q *opQueue) enqueueOp(op operation) {
	q.createOps = append(q.createOps, op)
}

func (q *opQueue) empty() bool {
	return len(q.createOps) == 0
}

func (s *storage) processOperationQueue() error {
	if s.opQueue.empty() {
		return nil
	}
	ops := s.opQueue.createOps
	s.opQueue.createOps = nil

	for _, op := range ops {
		switch op.typ {
		case opCreate:
			if _, err := s.NewEntities(op.amount, op.comps...); err != nil {
				return eris.Wrap(err, "failed to process queued entity creation")
			}
		case opInsert:
			if _, err := s.InsertBatch(op.comps, op.values); err != nil {
				return eris.Wrap(err, "failed to process queued batch insert")
			}
		}
	}
	return nil
}
