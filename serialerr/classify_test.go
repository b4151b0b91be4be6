package serialerr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestFromIOErrorPreservesDescription(t *testing.T) {
	src := errors.New("frame checksum mismatch after 3 bytes")

	got := FromIOError(src)
	assert.Equal(t, IoOther, got.Kind)
	assert.Equal(t, src.Error(), got.Message)
	assert.Zero(t, got.Errno)
	assert.ErrorIs(t, got, src)
}

func TestFromIOErrorGenericKinds(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"deadline", os.ErrDeadlineExceeded, IoTimedOut},
		{"context deadline", fmt.Errorf("read: %w", context.DeadlineExceeded), IoTimedOut},
		{"canceled", context.Canceled, IoInterrupted},
		{"eof", io.EOF, IoUnexpectedEOF},
		{"unexpected eof", fmt.Errorf("frame: %w", io.ErrUnexpectedEOF), IoUnexpectedEOF},
		{"file closed", os.ErrClosed, IoClosed},
		{"net closed", net.ErrClosed, IoClosed},
		{"pipe closed", io.ErrClosedPipe, IoClosed},
		{"short write", io.ErrShortWrite, IoOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromIOError(tt.err)
			assert.Equal(t, tt.want, got.Kind)
			assert.True(t, got.Kind.IsIO())
			assert.Equal(t, tt.err.Error(), got.Message)
		})
	}
}

func TestFromIOErrorKeepsNormalized(t *testing.T) {
	inner := New(InvalidInput, "baud rate must be positive", nil)
	wrapped := fmt.Errorf("configure: %w", inner)

	assert.Same(t, inner, FromIOError(wrapped))
}

func TestFromIOErrorNil(t *testing.T) {
	assert.Nil(t, FromIOError(nil))
}

func TestNewEmptyMessage(t *testing.T) {
	err := New(IoClosed, "", nil)
	assert.Equal(t, "io_closed", err.Message)
	assert.Nil(t, err.Unwrap())
}

func TestNewf(t *testing.T) {
	err := Newf(InvalidInput, "data bits must be 5-8, got %d", 9)
	assert.Equal(t, "data bits must be 5-8, got 9", err.Error())
	assert.Equal(t, InvalidInput, err.Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "no_device", NoDevice.String())
	assert.Equal(t, "io_would_block", IoWouldBlock.String())
	assert.Equal(t, "kind(42)", Kind(42).String())

	text, err := IoInterrupted.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "io_interrupted", string(text))
}

func TestKindIsIO(t *testing.T) {
	for _, k := range []Kind{Unknown, NoDevice, InvalidInput} {
		assert.False(t, k.IsIO(), k.String())
	}
	for _, k := range []Kind{IoInterrupted, IoWouldBlock, IoTimedOut, IoUnexpectedEOF, IoClosed, IoOther} {
		assert.True(t, k.IsIO(), k.String())
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Unknown, KindOf(errors.New("plain")))
	assert.Equal(t, IoClosed, KindOf(fmt.Errorf("write: %w", New(IoClosed, "port closed", nil))))
}

func TestGRPCStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want codes.Code
	}{
		{NoDevice, codes.NotFound},
		{InvalidInput, codes.InvalidArgument},
		{IoInterrupted, codes.Aborted},
		{IoWouldBlock, codes.Unavailable},
		{IoTimedOut, codes.DeadlineExceeded},
		{IoUnexpectedEOF, codes.DataLoss},
		{IoClosed, codes.FailedPrecondition},
		{IoOther, codes.Internal},
		{Unknown, codes.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			err := New(tt.kind, "port failure", nil)

			st, ok := status.FromError(err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, st.Code())
			assert.Equal(t, "port failure", st.Message())

			assert.Equal(t, tt.want, status.Code(fmt.Errorf("rpc: %w", err)))
		})
	}
}
