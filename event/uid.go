package event

import (
	"github.com/rs/xid"
)

type ID interface {
	String() string
}

func UID() ID {
	return xid.New()
}
