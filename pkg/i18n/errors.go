package i18n

import "errors"

var (
	ErrEmptyLanguage  = errors.New("i18n: empty language")
	ErrEmptyNamespace = errors.New("i18n: empty namespace")
	ErrNilPluralRule  = errors.New("i18n: nil plural rule")
	ErrInvalidFile    = errors.New("i18n: invalid translation file")
)
