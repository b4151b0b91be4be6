package serialerr

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GRPCCode returns the gRPC status code for a kind.
func (k Kind) GRPCCode() codes.Code {
	switch k {
	case NoDevice:
		return codes.NotFound
	case InvalidInput:
		return codes.InvalidArgument
	case IoInterrupted:
		return codes.Aborted
	case IoWouldBlock:
		return codes.Unavailable
	case IoTimedOut:
		return codes.DeadlineExceeded
	case IoUnexpectedEOF:
		return codes.DataLoss
	case IoClosed:
		return codes.FailedPrecondition
	case IoOther:
		return codes.Internal
	default:
		return codes.Unknown
	}
}

// GRPCStatus lets status.FromError and status.Code recognize normalized
// errors, including wrapped ones.
func (e *Error) GRPCStatus() *status.Status {
	return status.New(e.Kind.GRPCCode(), e.Message)
}
