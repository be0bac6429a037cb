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
	"encoding/binary"
	"io"

	"github/sabouaram/dargo/bigint"
	"github/sabouaram/dargo/errors"
)

// Order is the meaning of a request whose Size is zero: instead of
// asking for bytes at Offset, the master is asking the slave to perform
// one of a handful of fixed side operations.
type Order uint64

const (
	OrderTerminate Order = iota
	OrderFileSize
	OrderSetStatus
	OrderSliceHeaderSize
	OrderDataName
)

// respType tags which of Response's payload variants is populated.
type respType byte

const (
	typeData respType = iota + 1
	typeInfinint
	typeString
)

// request is one master-to-slave message: serial_num | offset:BigInt |
// size:u16. A Size of zero means Offset is actually an Order.
type request struct {
	Serial byte
	Offset bigint.Num
	Size   uint16
}

func writeRequest(w io.Writer, req request) error {
	if _, err := w.Write([]byte{req.Serial}); err != nil {
		return errors.New(uint16(Protocol), "zapette: writing request serial", err)
	}
	if _, err := req.Offset.Write(w); err != nil {
		return errors.New(uint16(Protocol), "zapette: writing request offset", err)
	}
	var sz [2]byte
	binary.BigEndian.PutUint16(sz[:], req.Size)
	if _, err := w.Write(sz[:]); err != nil {
		return errors.New(uint16(Protocol), "zapette: writing request size", err)
	}
	return nil
}

func readRequest(r io.Reader) (request, error) {
	var serial [1]byte
	if _, err := io.ReadFull(r, serial[:]); err != nil {
		return request{}, err
	}
	offset, _, err := bigint.Read(r)
	if err != nil {
		return request{}, errors.New(uint16(Protocol), "zapette: reading request offset", err)
	}
	var sz [2]byte
	if _, err := io.ReadFull(r, sz[:]); err != nil {
		return request{}, errors.New(uint16(Protocol), "zapette: reading request size", err)
	}
	return request{Serial: serial[0], Offset: offset, Size: binary.BigEndian.Uint16(sz[:])}, nil
}

// response is one slave-to-master message: serial_num | type | exactly
// one of {Data, Arg, Status} depending on Type.
type response struct {
	Serial byte
	Type   respType
	Data   []byte
	Arg    bigint.Num
	Status string
}

func writeResponse(w io.Writer, resp response) error {
	if _, err := w.Write([]byte{resp.Serial, byte(resp.Type)}); err != nil {
		return errors.New(uint16(Protocol), "zapette: writing response header", err)
	}
	switch resp.Type {
	case typeData:
		var sz [2]byte
		binary.BigEndian.PutUint16(sz[:], uint16(len(resp.Data)))
		if _, err := w.Write(sz[:]); err != nil {
			return errors.New(uint16(Protocol), "zapette: writing response size", err)
		}
		if len(resp.Data) > 0 {
			if _, err := w.Write(resp.Data); err != nil {
				return errors.New(uint16(Protocol), "zapette: writing response data", err)
			}
		}
	case typeInfinint:
		if _, err := resp.Arg.Write(w); err != nil {
			return errors.New(uint16(Protocol), "zapette: writing response arg", err)
		}
	case typeString:
		if _, err := bigint.New(uint64(len(resp.Status))).Write(w); err != nil {
			return errors.New(uint16(Protocol), "zapette: writing response status length", err)
		}
		if len(resp.Status) > 0 {
			if _, err := w.Write([]byte(resp.Status)); err != nil {
				return errors.New(uint16(Protocol), "zapette: writing response status", err)
			}
		}
	default:
		return errors.New(uint16(Protocol), "zapette: unknown response type")
	}
	return nil
}

func readResponse(r io.Reader) (response, error) {
	var hdr [2]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return response{}, err
	}
	resp := response{Serial: hdr[0], Type: respType(hdr[1])}
	switch resp.Type {
	case typeData:
		var sz [2]byte
		if _, err := io.ReadFull(r, sz[:]); err != nil {
			return response{}, errors.New(uint16(Protocol), "zapette: reading response size", err)
		}
		n := binary.BigEndian.Uint16(sz[:])
		if n > 0 {
			resp.Data = make([]byte, n)
			if _, err := io.ReadFull(r, resp.Data); err != nil {
				return response{}, errors.New(uint16(Protocol), "zapette: reading response data", err)
			}
		}
	case typeInfinint:
		arg, _, err := bigint.Read(r)
		if err != nil {
			return response{}, errors.New(uint16(Protocol), "zapette: reading response arg", err)
		}
		resp.Arg = arg
	case typeString:
		ln, _, err := bigint.Read(r)
		if err != nil {
			return response{}, errors.New(uint16(Protocol), "zapette: reading response status length", err)
		}
		n, overflow := ln.Uint64()
		if overflow {
			return response{}, errors.New(uint16(Protocol), "zapette: response status length overflow")
		}
		if n > 0 {
			buf := make([]byte, n)
			if _, err := io.ReadFull(r, buf); err != nil {
				return response{}, errors.New(uint16(Protocol), "zapette: reading response status", err)
			}
			resp.Status = string(buf)
		}
	default:
		return response{}, errors.New(uint16(Protocol), "zapette: unknown response type")
	}
	return resp, nil
}
