package menu

import "errors"

var ErrUnknownMealType = errors.New("unknown meal type")
