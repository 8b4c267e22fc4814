package errors

import "errors"

var (
	ErrAzureCLINotFound   = errors.New("azure cli (az) not found on PATH")
	ErrNotLoggedIn        = errors.New("no active azure session")
	ErrFuncToolsNotFound  = errors.New("azure functions core tools (func) not found on PATH")
	ErrAppNotReady        = errors.New("function app did not reach Running state")
	ErrInvalidStorageName = errors.New("invalid storage account name")
	ErrEmptyProfile       = errors.New("no config file provided")
	ErrNoTableData        = errors.New("table query returned no data files")
)
