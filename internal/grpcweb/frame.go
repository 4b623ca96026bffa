package grpcweb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	headerLen  = 5
	maxMessage = 4 << 20

	dataFlag    byte = 0x00
	trailerFlag byte = 0x80
)

// unframe returns the message of a single uncompressed data frame.
func unframe(body []byte) ([]byte, error) {
	if len(body) < headerLen {
		return nil, errors.New("body too short")
	}
	if body[0] != dataFlag {
		return nil, fmt.Errorf("unsupported frame flag %#x", body[0])
	}
	n := binary.BigEndian.Uint32(body[1:headerLen])
	if n > maxMessage || int(n) > len(body)-headerLen {
		return nil, errors.New("incomplete frame")
	}
	return body[headerLen : headerLen+int(n)], nil
}

func appendFrame(dst []byte, flag byte, msg []byte) []byte {
	dst = append(dst, flag, 0, 0, 0, 0)
	binary.BigEndian.PutUint32(dst[len(dst)-4:], uint32(len(msg)))
	return append(dst, msg...)
}

// respond writes the data frame (on success only) and the trailer frame.
// The HTTP status is always 200; the outcome travels in grpc-status.
func respond(w http.ResponseWriter, data []byte, st *status.Status) {
	var out []byte
	if st.Code() == codes.OK {
		out = appendFrame(out, dataFlag, data)
	}
	out = appendFrame(out, trailerFlag, trailer(st))

	w.Header().Set("Content-Type", "application/grpc-web+proto")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func trailer(st *status.Status) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "grpc-status:%d\r\n", st.Code())
	if msg := st.Message(); msg != "" {
		fmt.Fprintf(&b, "grpc-message:%s\r\n", encodeMessage(msg))
	}
	return []byte(b.String())
}

// encodeMessage percent-encodes every byte outside printable ASCII, and
// '%' itself, as grpc-message requires.
func encodeMessage(msg string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(msg); i++ {
		c := msg[i]
		if c >= 0x20 && c <= 0x7e && c != '%' {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

// passthrough holds an already-encoded message.
type passthrough struct{ data []byte }

// passthroughCodec hands message bytes to and from the transport untouched.
type passthroughCodec struct{}

func (passthroughCodec) Marshal(v any) ([]byte, error) {
	m, ok := v.(*passthrough)
	if !ok {
		return nil, fmt.Errorf("grpcweb: cannot marshal %T", v)
	}
	return m.data, nil
}

func (passthroughCodec) Unmarshal(data []byte, v any) error {
	m, ok := v.(*passthrough)
	if !ok {
		return fmt.Errorf("grpcweb: cannot unmarshal into %T", v)
	}
	m.data = append([]byte(nil), data...)
	return nil
}

// Name matches the server's codec so the content-subtype lines up.
func (passthroughCodec) Name() string { return "proto" }
