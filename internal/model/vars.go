package model

import "github.com/zeromicro/go-zero/core/stores/sqlx"

// ErrNotFound is returned when a row lookup matches nothing.
var ErrNotFound = sqlx.ErrNotFound
