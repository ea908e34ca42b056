package store

import (
	"testing"

	bolt "go.etcd.io/bbolt"

	"lattice.dev/ledger/primitives"
)

func TestRepresentationAddSubPut(t *testing.T) {
	s := testStore(t)
	rep := primitives.Account{0x01}

	err := s.Update(func(tx *bolt.Tx) error {
		if err := RepresentationAdd(tx, rep, primitives.Uint128FromUint64(100)); err != nil {
			return err
		}
		return RepresentationAdd(tx, rep, primitives.Uint128FromUint64(50))
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	err = s.View(func(tx *bolt.Tx) error {
		w, err := RepresentationGet(tx, rep)
		if err != nil {
			return err
		}
		if w.Cmp(primitives.Uint128FromUint64(150)) != 0 {
			t.Fatalf("weight=%s, want 150", w.String())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}

	if err := s.Update(func(tx *bolt.Tx) error { return RepresentationSub(tx, rep, primitives.Uint128FromUint64(150)) }); err != nil {
		t.Fatalf("sub: %v", err)
	}
	err = s.View(func(tx *bolt.Tx) error {
		w, err := RepresentationGet(tx, rep)
		if err != nil {
			return err
		}
		if !w.IsZero() {
			t.Fatalf("weight=%s, want 0", w.String())
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestRepresentationSubUnderflowErrors(t *testing.T) {
	s := testStore(t)
	rep := primitives.Account{0x02}
	err := s.Update(func(tx *bolt.Tx) error {
		return RepresentationSub(tx, rep, primitives.Uint128FromUint64(1))
	})
	if err == nil {
		t.Fatalf("expected underflow error")
	}
}

func TestRepresentationGetUnknownAccountIsZero(t *testing.T) {
	s := testStore(t)
	err := s.View(func(tx *bolt.Tx) error {
		w, err := RepresentationGet(tx, primitives.Account{0x99})
		if err != nil {
			return err
		}
		if !w.IsZero() {
			t.Fatalf("expected zero weight for unknown account")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}
