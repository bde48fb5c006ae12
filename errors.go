/*
 * errors.go, part of swarms.
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
	"errors"
	"fmt"
	"strings"
)

//Kind is the category of an error. All errors in this library
//belong to one of the Kinds below. A Kind is also an error, so
//errors.Is(err, swarms.DegenerateGeometry) can be used to check for a category.
type Kind string

func (k Kind) Error() string { return string(k) }

const (
	MalformedInput        Kind = "malformed input"         //wrong line count, non-numeric value, mismatched dimensions.
	DegenerateGeometry    Kind = "degenerate geometry"     //zero-length vectors, zero-length strings.
	UnreachableTraversal  Kind = "unreachable traversal"   //a nearest-neighbor walk can't get to the last image.
	ExternalOracleFailure Kind = "external oracle failure" //the simulation engine failed or left missing data.
)

//Error is the error type for all packages in this library. The Decorate method allows to add and retrieve info from the
//error, without changing it's type or wrapping it around something else.
//The decoration slice contains the functions or pipeline stages the error went through, the innermost first.
type Error struct {
	kind    Kind
	image   int //-1 if the error is not related to a particular image
	message string
	deco    []string
}

//NewError returns a new *Error of the given kind, related to the given image index
//(use -1 for none). caller is the name of the function creating the error.
func NewError(kind Kind, image int, caller string, format string, a ...any) *Error {
	return &Error{kind: kind, image: image, message: fmt.Sprintf(format, a...), deco: []string{caller}}
}

func (E *Error) Error() string {
	var b strings.Builder
	b.WriteString("swarms: ")
	b.WriteString(string(E.kind))
	if E.image >= 0 {
		fmt.Fprintf(&b, " at image %d", E.image)
	}
	if E.message != "" {
		b.WriteString(": " + E.message)
	}
	if len(E.deco) > 0 {
		b.WriteString(" [" + strings.Join(E.deco, " <- ") + "]")
	}
	return b.String()
}

//Decorate adds dec to the decoration of the error and returns the resulting slice.
//If passed an empty string, it just returns the current value.
func (E *Error) Decorate(dec string) []string {
	if dec != "" {
		E.deco = append(E.deco, dec)
	}
	return E.deco
}

//Kind returns the category of the error.
func (E *Error) Kind() Kind { return E.kind }

//Image returns the index of the image that caused the error, or -1.
func (E *Error) Image() int { return E.image }

func (E *Error) Unwrap() error { return E.kind }

//Decorate adds caller to the decoration of err if err is (or wraps) an *Error. Otherwise,
//the error is wrapped with caller as a prefix. Returns nil if err is nil.
func Decorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var E *Error
	if errors.As(err, &E) {
		E.Decorate(caller)
		return err
	}
	return fmt.Errorf("%s: %w", caller, err)
}

//ImageOf returns the image index associated to err, or -1 if err
//is not an *Error or has no image associated.
func ImageOf(err error) int {
	var E *Error
	if errors.As(err, &E) {
		return E.image
	}
	return -1
}
