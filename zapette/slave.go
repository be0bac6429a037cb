/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package zapette

import (
	"io"

	"github/sabouaram/dargo/bigint"
	"github/sabouaram/dargo/errors"
	"github/sabouaram/dargo/stream"
)

// Slave answers one request at a time against a local archive stream,
// never pipelining: it reads a request, seeks and reads the underlying
// archive, writes exactly one response, and only then reads the next
// request. This keeps the two-pipe protocol trivially synchronous.
type Slave struct {
	archive         stream.Stream
	size            int64
	sliceHeaderSize int64
	dataName        [10]byte
	status          string
}

// NewSlave wraps archive, answering file-size/slice-header-size/
// data-name side orders from the fixed values given here rather than by
// querying archive, since those are catalogue-level facts the caller
// already knows and a Stream has no general way to expose.
func NewSlave(archive stream.Stream, size, sliceHeaderSize int64, dataName [10]byte) *Slave {
	return &Slave{archive: archive, size: size, sliceHeaderSize: sliceHeaderSize, dataName: dataName}
}

// Serve reads requests off r and writes responses to w until the master
// sends OrderTerminate or r is closed. It returns nil on either a clean
// termination or a clean pipe close (io.EOF reading the next request).
func (s *Slave) Serve(r io.Reader, w io.Writer) error {
	for {
		req, err := readRequest(r)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		resp, terminate, err := s.handle(req)
		if err != nil {
			return err
		}
		if err := writeResponse(w, resp); err != nil {
			return err
		}
		if terminate {
			return nil
		}
	}
}

func (s *Slave) handle(req request) (response, bool, error) {
	if req.Size == 0 {
		return s.handleOrder(req)
	}

	offset, overflow := req.Offset.Uint64()
	if overflow {
		return response{}, false, errors.New(uint16(Protocol), "zapette: request offset overflows int64")
	}
	if _, err := s.archive.Skip(int64(offset)); err != nil {
		return response{}, false, err
	}
	buf := make([]byte, req.Size)
	n, err := s.archive.Read(buf)
	if err != nil && err != io.EOF {
		return response{}, false, err
	}
	return response{Serial: req.Serial, Type: typeData, Data: buf[:n]}, false, nil
}

func (s *Slave) handleOrder(req request) (response, bool, error) {
	orderVal, overflow := req.Offset.Uint64()
	if overflow {
		return response{}, false, errors.New(uint16(Protocol), "zapette: order value overflows uint64")
	}
	switch Order(orderVal) {
	case OrderTerminate:
		return response{Serial: req.Serial, Type: typeString, Status: "bye"}, true, nil
	case OrderFileSize:
		return response{Serial: req.Serial, Type: typeInfinint, Arg: bigint.New(uint64(s.size))}, false, nil
	case OrderSetStatus:
		s.status = "reset"
		return response{Serial: req.Serial, Type: typeString, Status: "ok"}, false, nil
	case OrderSliceHeaderSize:
		return response{Serial: req.Serial, Type: typeInfinint, Arg: bigint.New(uint64(s.sliceHeaderSize))}, false, nil
	case OrderDataName:
		return response{Serial: req.Serial, Type: typeData, Data: append([]byte(nil), s.dataName[:]...)}, false, nil
	default:
		return response{}, false, errors.New(uint16(Protocol), "zapette: unknown order")
	}
}
