/*
 * files.go, part of swarms.
 *
 * Copyright 2024 Raul Mera <rmeraa{at}academicosDOTutaDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package swarms

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/swarms/vn"
)

//String files have the format
//
//	# Image 0
//	var_1
//	...
//	var_nvars
//	# Image 1
//	...
//
//Lines starting with '#' (and empty lines) are ignored when reading. Files with names ending
//in ".zst" are zstd-compressed.

//ReadString reads a string of images with nvars variables each from r.
func ReadString(r io.Reader, nvars int) (*vn.Matrix, error) {
	return readString(r, nvars, -1)
}

//ReadStringN reads a string from r, and returns an error unless it contains exactly nimages
//images with nvars variables each.
func ReadStringN(r io.Reader, nimages, nvars int) (*vn.Matrix, error) {
	return readString(r, nvars, nimages)
}

func readString(r io.Reader, nvars, nimages int) (*vn.Matrix, error) {
	if nvars <= 0 {
		return nil, NewError(MalformedInput, -1, "ReadString", "invalid number of variables %d", nvars)
	}
	data := make([]float64, 0, 10*nvars)
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		l := strings.TrimSpace(s.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		f, err := strconv.ParseFloat(l, 64)
		if err != nil {
			return nil, NewError(MalformedInput, len(data)/nvars, "ReadString", "line %d: %q is not a number", line, l)
		}
		data = append(data, f)
	}
	if err := s.Err(); err != nil {
		return nil, NewError(MalformedInput, -1, "ReadString", "reading: %v", err)
	}
	if len(data) == 0 || len(data)%nvars != 0 {
		return nil, NewError(MalformedInput, -1, "ReadString", "%d values can't be divided in images of %d variables", len(data), nvars)
	}
	if nimages > 0 && len(data) != nimages*nvars {
		return nil, NewError(MalformedInput, -1, "ReadString", "%d values read, %d images of %d variables expected", len(data), nimages, nvars)
	}
	ret, err := vn.NewMatrix(data, nvars)
	if err != nil {
		return nil, NewError(MalformedInput, -1, "ReadString", "%v", err)
	}
	return ret, nil
}

//WriteString writes the string S to w.
func WriteString(w io.Writer, S *vn.Matrix) error {
	b := bufio.NewWriter(w)
	for i := 0; i < S.NVecs(); i++ {
		fmt.Fprintf(b, "# Image %d\n", i)
		for _, v := range S.RawVec(i) {
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			b.WriteByte('\n')
		}
	}
	return b.Flush()
}

//zstd decoders don't implement io.ReadCloser, so we need this.
type fileCloser struct {
	io.Reader
	closers []func() error
}

func (f *fileCloser) Close() error {
	var err error
	for _, c := range f.closers {
		if e := c(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

//OpenString opens the string file name for reading, decompressing it if needed.
func OpenString(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(name, ".zst") {
		return f, nil
	}
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &fileCloser{Reader: dec, closers: []func() error{func() error { dec.Close(); return nil }, f.Close}}, nil
}

//ReadStringFile reads a string with nvars variables per image from the file name.
func ReadStringFile(name string, nvars int) (*vn.Matrix, error) {
	f, err := OpenString(name)
	if err != nil {
		return nil, NewError(MalformedInput, -1, "ReadStringFile", "opening %s: %v", name, err)
	}
	defer f.Close()
	S, err := ReadString(f, nvars)
	if err != nil {
		return nil, Decorate(err, "ReadStringFile: "+name)
	}
	return S, nil
}

//WriteStringFile writes S to the file name. The file is zstd-compressed if the name ends in ".zst".
func WriteStringFile(name string, S *vn.Matrix) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	var w io.Writer = f
	var enc *zstd.Encoder
	if strings.HasSuffix(name, ".zst") {
		enc, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			f.Close()
			return err
		}
		w = enc
	}
	err = WriteString(w, S)
	if enc != nil {
		if e := enc.Close(); e != nil && err == nil {
			err = e
		}
	}
	if e := f.Close(); e != nil && err == nil {
		err = e
	}
	return err
}
