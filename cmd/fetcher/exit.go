package main

import "github.com/fwojciec/fetcher"

// Process exit codes.
const (
	ExitOK         = 0
	ExitInvalid    = 1
	ExitFetch      = 2
	ExitNoContent  = 3
	ExitEmpty      = 4
	ExitFilesystem = 5
	ExitTimeout    = 6
	ExitInternal   = 7
)

// ExitCode maps an error returned by Main.Run to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch fetcher.ErrorCode(err) {
	case fetcher.EINVALID:
		return ExitInvalid
	case fetcher.EFETCH:
		return ExitFetch
	case fetcher.ENOCONTENT:
		return ExitNoContent
	case fetcher.EEMPTY:
		return ExitEmpty
	case fetcher.EFILESYSTEM:
		return ExitFilesystem
	case fetcher.ETIMEOUT:
		return ExitTimeout
	}
	return ExitInternal
}
