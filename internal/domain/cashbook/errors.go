package cashbook

import "errors"

var ErrTransactionNotFound = errors.New("cash transaction not found")
