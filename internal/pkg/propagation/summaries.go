// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package propagation

import (
	"fmt"
	"strconv"
	"strings"
)

// A Summary captures how a library function moves taint between its
// arguments and its results. When present, the receiver counts as argument 0.
//
// As an example, consider fmt.Fprintf:
//   Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error)
// Its summary is:
//   "fmt.Fprintf": {From: args(1, 2), ToArgs: args(0)},
// If the format string or the varargs slice is tainted, the Writer becomes tainted.
type Summary struct {
	// From holds the positions of the arguments whose taint flows out of the call.
	From []int
	// ToArgs holds the positions of the arguments that become tainted
	// when one of the From arguments is tainted.
	ToArgs []int
	// ToResults is set if the results become tainted
	// when one of the From arguments is tainted.
	ToResults bool
}

func (s Summary) String() string {
	var to []string
	for _, a := range s.ToArgs {
		to = append(to, strconv.Itoa(a))
	}
	if s.ToResults {
		to = append(to, "result")
	}
	return fmt.Sprintf("%v -> %s", s.From, strings.Join(to, ","))
}

func args(positions ...int) []int {
	return positions
}

var firstToResult = Summary{From: args(0), ToResults: true}

// funcSummaries contains summaries for functions and concrete methods
// that can be called statically. Keys are in ssa.Function.RelString(nil) form.
var funcSummaries = map[string]Summary{
	// Errorf(format string, a ...interface{}) error
	"fmt.Errorf": {From: args(0, 1), ToResults: true},
	// Sprint(a ...interface{}) string
	"fmt.Sprint": firstToResult,
	// Sprintf(format string, a ...interface{}) string
	"fmt.Sprintf": {From: args(0, 1), ToResults: true},
	// Sprintln(a ...interface{}) string
	"fmt.Sprintln": firstToResult,
	// Fprint(w io.Writer, a ...interface{}) (n int, err error)
	"fmt.Fprint": {From: args(1), ToArgs: args(0)},
	// Fprintf(w io.Writer, format string, a ...interface{}) (n int, err error)
	"fmt.Fprintf": {From: args(1, 2), ToArgs: args(0)},
	// Fprintln(w io.Writer, a ...interface{}) (n int, err error)
	"fmt.Fprintln": {From: args(1), ToArgs: args(0)},
	// Sscan(str string, a ...interface{}) (n int, err error)
	"fmt.Sscan": {From: args(0), ToArgs: args(1)},
	// Sscanln(str string, a ...interface{}) (n int, err error)
	"fmt.Sscanln": {From: args(0), ToArgs: args(1)},
	// Sscanf(str string, format string, a ...interface{}) (n int, err error)
	"fmt.Sscanf": {From: args(0), ToArgs: args(2)},
	// Fscan(r io.Reader, a ...interface{}) (n int, err error)
	"fmt.Fscan": {From: args(0), ToArgs: args(1)},
	// Fscanln(r io.Reader, a ...interface{}) (n int, err error)
	"fmt.Fscanln": {From: args(0), ToArgs: args(1)},
	// Fscanf(r io.Reader, format string, a ...interface{}) (n int, err error)
	"fmt.Fscanf": {From: args(0), ToArgs: args(2)},
	// New(text string) error
	"errors.New": firstToResult,
	// Unwrap(err error) error
	"errors.Unwrap": firstToResult,
	// As(err error, target interface{}) bool
	"errors.As": {From: args(0), ToArgs: args(1)},
	// SplitN(s, sep string, n int) []string
	"strings.SplitN": firstToResult,
	// SplitAfterN(s, sep string, n int) []string
	"strings.SplitAfterN": firstToResult,
	// Split(s, sep string) []string
	"strings.Split": firstToResult,
	// SplitAfter(s, sep string) []string
	"strings.SplitAfter": firstToResult,
	// Fields(s string) []string
	"strings.Fields": firstToResult,
	// FieldsFunc(s string, f func(rune) bool) []string
	"strings.FieldsFunc": firstToResult,
	// Join(elems []string, sep string) string
	"strings.Join": {From: args(0, 1), ToResults: true},
	// Map(mapping func(rune) rune, s string) string
	"strings.Map": {From: args(1), ToResults: true},
	// Repeat(s string, count int) string
	"strings.Repeat": firstToResult,
	// ToUpper(s string) string
	"strings.ToUpper": firstToResult,
	// ToLower(s string) string
	"strings.ToLower": firstToResult,
	// ToTitle(s string) string
	"strings.ToTitle": firstToResult,
	// ToUpperSpecial(c unicode.SpecialCase, s string) string
	"strings.ToUpperSpecial": {From: args(1), ToResults: true},
	// ToLowerSpecial(c unicode.SpecialCase, s string) string
	"strings.ToLowerSpecial": {From: args(1), ToResults: true},
	// ToTitleSpecial(c unicode.SpecialCase, s string) string
	"strings.ToTitleSpecial": {From: args(1), ToResults: true},
	// ToValidUTF8(s, replacement string) string
	"strings.ToValidUTF8": {From: args(0, 1), ToResults: true},
	// Title(s string) string
	"strings.Title": firstToResult,
	// TrimLeftFunc(s string, f func(rune) bool) string
	"strings.TrimLeftFunc": firstToResult,
	// TrimRightFunc(s string, f func(rune) bool) string
	"strings.TrimRightFunc": firstToResult,
	// TrimFunc(s string, f func(rune) bool) string
	"strings.TrimFunc": firstToResult,
	// Trim(s, cutset string) string
	"strings.Trim": firstToResult,
	// TrimLeft(s, cutset string) string
	"strings.TrimLeft": firstToResult,
	// TrimRight(s, cutset string) string
	"strings.TrimRight": firstToResult,
	// TrimSpace(s string) string
	"strings.TrimSpace": firstToResult,
	// TrimPrefix(s, prefix string) string
	"strings.TrimPrefix": firstToResult,
	// TrimSuffix(s, suffix string) string
	"strings.TrimSuffix": firstToResult,
	// Replace(s, old, new string, n int) string
	"strings.Replace": {From: args(0, 2), ToResults: true},
	// ReplaceAll(s, old, new string) string
	"strings.ReplaceAll": {From: args(0, 2), ToResults: true},
	// NewReader(s string) *Reader
	"strings.NewReader": firstToResult,
	// (r *Replacer) Replace(s string) string
	"(*strings.Replacer).Replace": {From: args(0, 1), ToResults: true},
	// (r *Replacer) WriteString(w io.Writer, s string) (n int, err error)
	"(*strings.Replacer).WriteString": {From: args(0, 2), ToArgs: args(1)},
	// NewReplacer(oldnew ...string) *Replacer
	"strings.NewReplacer": firstToResult,
	// (b *Buffer) Next(n int) []byte
	"(*bytes.Buffer).Next": firstToResult,
	// (b *Buffer) ReadBytes(delim byte) (line []byte, err error)
	"(*bytes.Buffer).ReadBytes": firstToResult,
	// (b *Buffer) ReadString(delim byte) (line string, err error)
	"(*bytes.Buffer).ReadString": firstToResult,
	// NewBuffer(buf []byte) *Buffer
	"bytes.NewBuffer": firstToResult,
	// NewBufferString(s string) *Buffer
	"bytes.NewBufferString": firstToResult,
	// SplitN(s, sep []byte, n int) [][]byte
	"bytes.SplitN": firstToResult,
	// SplitAfterN(s, sep []byte, n int) [][]byte
	"bytes.SplitAfterN": firstToResult,
	// Split(s, sep []byte) [][]byte
	"bytes.Split": firstToResult,
	// SplitAfter(s, sep []byte) [][]byte
	"bytes.SplitAfter": firstToResult,
	// Fields(s []byte) [][]byte
	"bytes.Fields": firstToResult,
	// FieldsFunc(s []byte, f func(rune) bool) [][]byte
	"bytes.FieldsFunc": firstToResult,
	// Join(s [][]byte, sep []byte) []byte
	"bytes.Join": {From: args(0, 1), ToResults: true},
	// Map(mapping func(r rune) rune, s []byte) []byte
	"bytes.Map": {From: args(1), ToResults: true},
	// Repeat(b []byte, count int) []byte
	"bytes.Repeat": firstToResult,
	// ToUpper(s []byte) []byte
	"bytes.ToUpper": firstToResult,
	// ToLower(s []byte) []byte
	"bytes.ToLower": firstToResult,
	// ToTitle(s []byte) []byte
	"bytes.ToTitle": firstToResult,
	// ToUpperSpecial(c unicode.SpecialCase, s []byte) []byte
	"bytes.ToUpperSpecial": {From: args(1), ToResults: true},
	// ToLowerSpecial(c unicode.SpecialCase, s []byte) []byte
	"bytes.ToLowerSpecial": {From: args(1), ToResults: true},
	// ToTitleSpecial(c unicode.SpecialCase, s []byte) []byte
	"bytes.ToTitleSpecial": {From: args(1), ToResults: true},
	// ToValidUTF8(s, replacement []byte) []byte
	"bytes.ToValidUTF8": {From: args(0, 1), ToResults: true},
	// Title(s []byte) []byte
	"bytes.Title": firstToResult,
	// TrimLeftFunc(s []byte, f func(r rune) bool) []byte
	"bytes.TrimLeftFunc": firstToResult,
	// TrimRightFunc(s []byte, f func(r rune) bool) []byte
	"bytes.TrimRightFunc": firstToResult,
	// TrimFunc(s []byte, f func(r rune) bool) []byte
	"bytes.TrimFunc": firstToResult,
	// TrimPrefix(s, prefix []byte) []byte
	"bytes.TrimPrefix": firstToResult,
	// TrimSuffix(s, suffix []byte) []byte
	"bytes.TrimSuffix": firstToResult,
	// Trim(s []byte, cutset string) []byte
	"bytes.Trim": firstToResult,
	// TrimLeft(s []byte, cutset string) []byte
	"bytes.TrimLeft": firstToResult,
	// TrimRight(s []byte, cutset string) []byte
	"bytes.TrimRight": firstToResult,
	// TrimSpace(s []byte) []byte
	"bytes.TrimSpace": firstToResult,
	// Runes(s []byte) []rune
	"bytes.Runes": firstToResult,
	// Replace(s, old, new []byte, n int) []byte
	"bytes.Replace": {From: args(0, 2), ToResults: true},
	// ReplaceAll(s, old, new []byte) []byte
	"bytes.ReplaceAll": {From: args(0, 2), ToResults: true},
	// NewReader(b []byte) *Reader
	"bytes.NewReader": firstToResult,
	// WriteString(w Writer, s string) (n int, err error)
	"io.WriteString": {From: args(1), ToArgs: args(0)},
	// ReadAtLeast(r Reader, buf []byte, min int) (n int, err error)
	"io.ReadAtLeast": {From: args(0), ToArgs: args(1)},
	// ReadFull(r Reader, buf []byte) (n int, err error)
	"io.ReadFull": {From: args(0), ToArgs: args(1)},
	// CopyN(dst Writer, src Reader, n int64) (written int64, err error)
	"io.CopyN": {From: args(1), ToArgs: args(0)},
	// Copy(dst Writer, src Reader) (written int64, err error)
	"io.Copy": {From: args(1), ToArgs: args(0)},
	// CopyBuffer(dst Writer, src Reader, buf []byte) (written int64, err error)
	"io.CopyBuffer": {From: args(1), ToArgs: args(0, 2)},
	// LimitReader(r Reader, n int64) Reader
	"io.LimitReader": firstToResult,
	// TeeReader(r Reader, w Writer) Reader
	"io.TeeReader": {From: args(0, 1), ToResults: true},
	// MultiReader(readers ...Reader) Reader
	"io.MultiReader": firstToResult,
	// MultiWriter(writers ...Writer) Writer
	"io.MultiWriter": firstToResult,
	// (r *PipeReader) CloseWithError(err error) error
	"(*io.PipeReader).CloseWithError": firstToResult,
	// (w *PipeWriter) CloseWithError(err error) error
	"(*io.PipeWriter).CloseWithError": firstToResult,
	// ReadAll(r io.Reader) ([]byte, error)
	"io/ioutil.ReadAll": firstToResult,
	// NopCloser(r io.Reader) io.ReadCloser
	"io/ioutil.NopCloser": firstToResult,
	// NewReaderSize(rd io.Reader, size int) *Reader
	"bufio.NewReaderSize": firstToResult,
	// NewReader(rd io.Reader) *Reader
	"bufio.NewReader": firstToResult,
	// (b *Reader) Peek(n int) ([]byte, error)
	"(*bufio.Reader).Peek": firstToResult,
	// (b *Reader) ReadSlice(delim byte) (line []byte, err error)
	"(*bufio.Reader).ReadSlice": firstToResult,
	// (b *Reader) ReadLine() (line []byte, isPrefix bool, err error)
	"(*bufio.Reader).ReadLine": firstToResult,
	// (b *Reader) ReadBytes(delim byte) ([]byte, error)
	"(*bufio.Reader).ReadBytes": firstToResult,
	// (b *Reader) ReadString(delim byte) (string, error)
	"(*bufio.Reader).ReadString": firstToResult,
	// NewWriterSize(w io.Writer, size int) *Writer
	"bufio.NewWriterSize": firstToResult,
	// NewWriter(w io.Writer) *Writer
	"bufio.NewWriter": firstToResult,
	// NewReadWriter(r *Reader, w *Writer) *ReadWriter
	"bufio.NewReadWriter": {From: args(0, 1), ToResults: true},
	// NewScanner(r io.Reader) *Scanner
	"bufio.NewScanner": firstToResult,
	// (s *Scanner) Bytes() []byte
	"(*bufio.Scanner).Bytes": firstToResult,
	// (s *Scanner) Text() string
	"(*bufio.Scanner).Text": firstToResult,
	// (s *Scanner) Buffer(buf []byte, max int)
	"(*bufio.Scanner).Buffer": {From: args(1), ToArgs: args(0)},
	// ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error)
	"bufio.ScanLines": {From: args(0), ToResults: true},
	// ScanWords(data []byte, atEOF bool) (advance int, token []byte, err error)
	"bufio.ScanWords": {From: args(0), ToResults: true},
	// WithValue(parent Context, key, val interface{}) Context
	"context.WithValue": {From: args(0, 1, 2), ToResults: true},
	// AppendBool(dst []byte, b bool) []byte
	"strconv.AppendBool": firstToResult,
	// AppendFloat(dst []byte, f float64, fmt byte, prec, bitSize int) []byte
	"strconv.AppendFloat": firstToResult,
	// AppendInt(dst []byte, i int64, base int) []byte
	"strconv.AppendInt": firstToResult,
	// AppendUint(dst []byte, i uint64, base int) []byte
	"strconv.AppendUint": firstToResult,
	// Quote(s string) string
	"strconv.Quote": firstToResult,
	// AppendQuote(dst []byte, s string) []byte
	"strconv.AppendQuote": {From: args(0, 1), ToResults: true},
	// QuoteToASCII(s string) string
	"strconv.QuoteToASCII": firstToResult,
	// AppendQuoteToASCII(dst []byte, s string) []byte
	"strconv.AppendQuoteToASCII": {From: args(0, 1), ToResults: true},
	// QuoteToGraphic(s string) string
	"strconv.QuoteToGraphic": firstToResult,
	// AppendQuoteToGraphic(dst []byte, s string) []byte
	"strconv.AppendQuoteToGraphic": {From: args(0, 1), ToResults: true},
	// AppendQuoteRune(dst []byte, r rune) []byte
	"strconv.AppendQuoteRune": firstToResult,
	// AppendQuoteRuneToASCII(dst []byte, r rune) []byte
	"strconv.AppendQuoteRuneToASCII": firstToResult,
	// AppendQuoteRuneToGraphic(dst []byte, r rune) []byte
	"strconv.AppendQuoteRuneToGraphic": firstToResult,
	// UnquoteChar(s string, quote byte) (value rune, multibyte bool, tail string, err error)
	"strconv.UnquoteChar": {From: args(0), ToResults: true},
	// Unquote(s string) (string, error)
	"strconv.Unquote": firstToResult,
	// Unmarshal(data []byte, v interface{}) error
	"encoding/json.Unmarshal": {From: args(0, 1), ToArgs: args(0, 1)},
	// Marshal(v interface{}) ([]byte, error)
	"encoding/json.Marshal": firstToResult,
	// MarshalIndent(v interface{}, prefix, indent string) ([]byte, error)
	"encoding/json.MarshalIndent": firstToResult,
	// HTMLEscape(dst *bytes.Buffer, src []byte)
	"encoding/json.HTMLEscape": {From: args(1), ToArgs: args(0)},
	// Compact(dst *bytes.Buffer, src []byte) error
	"encoding/json.Compact": {From: args(1), ToArgs: args(0)},
	// Indent(dst *bytes.Buffer, src []byte, prefix, indent string) error
	"encoding/json.Indent": {From: args(1), ToArgs: args(0)},
	// NewDecoder(r io.Reader) *Decoder
	"encoding/json.NewDecoder": firstToResult,
	// (dec *Decoder) Decode(v interface{}) error
	"(*encoding/json.Decoder).Decode": {From: args(0), ToArgs: args(1)},
	// (dec *Decoder) Buffered() io.Reader
	"(*encoding/json.Decoder).Buffered": firstToResult,
	// (dec *Decoder) Token() (Token, error)
	"(*encoding/json.Decoder).Token": firstToResult,
	// NewEncoder(w io.Writer) *Encoder
	"encoding/json.NewEncoder": firstToResult,
	// (enc *Encoder) Encode(v interface{}) error
	"(*encoding/json.Encoder).Encode": {From: args(1), ToArgs: args(0)},
	// (m RawMessage) MarshalJSON() ([]byte, error)
	"(encoding/json.RawMessage).MarshalJSON": firstToResult,
	// (m *RawMessage) UnmarshalJSON(data []byte) error
	"(*encoding/json.RawMessage).UnmarshalJSON": {From: args(1), ToArgs: args(0)},
	// (enc *Encoding) Encode(dst, src []byte)
	"(*encoding/base64.Encoding).Encode": {From: args(1), ToArgs: args(0)},
	// (enc *Encoding) EncodeToString(src []byte) string
	"(*encoding/base64.Encoding).EncodeToString": firstToResult,
	// (enc *Encoding) DecodeString(s string) ([]byte, error)
	"(*encoding/base64.Encoding).DecodeString": firstToResult,
	// (enc *Encoding) Decode(dst, src []byte) (n int, err error)
	"(*encoding/base64.Encoding).Decode": {From: args(1), ToArgs: args(0)},
	// NewDecoder(enc *Encoding, r io.Reader) io.Reader
	"encoding/base64.NewDecoder": firstToResult,
	// (m *Map) Load(key interface{}) (value interface{}, ok bool)
	"(*sync.Map).Load": firstToResult,
	// (m *Map) Store(key, value interface{})
	"(*sync.Map).Store": {From: args(1, 2), ToArgs: args(0)},
	// (m *Map) LoadOrStore(key, value interface{}) (actual interface{}, loaded bool)
	"(*sync.Map).LoadOrStore": {From: args(0, 1, 2), ToArgs: args(0), ToResults: true},
	// (m *Map) LoadAndDelete(key interface{}) (value interface{}, loaded bool)
	"(*sync.Map).LoadAndDelete": firstToResult,
	// (p *Pool) Put(x interface{})
	"(*sync.Pool).Put": {From: args(1), ToArgs: args(0)},
	// (p *Pool) Get() interface{}
	"(*sync.Pool).Get": firstToResult,
	// (s *Scanner) Init(src io.Reader) *Scanner
	"(*text/scanner.Scanner).Init": {From: args(1), ToArgs: args(0), ToResults: true},
	// (s *Scanner) TokenText() string
	"(*text/scanner.Scanner).TokenText": firstToResult,
	// (b *Writer) Write(buf []byte) (n int, err error)
	"(*text/tabwriter.Writer).Write": {From: args(1), ToArgs: args(0)},
	// NewWriter(output io.Writer, minwidth, tabwidth, padding int, padchar byte, flags uint) *Writer
	"text/tabwriter.NewWriter": firstToResult,
	// (t *Template) ExecuteTemplate(wr io.Writer, name string, data interface{}) error
	"(*text/template.Template).ExecuteTemplate": {From: args(3), ToArgs: args(1)},
	// (t *Template) Execute(wr io.Writer, data interface{}) error
	"(*text/template.Template).Execute": {From: args(2), ToArgs: args(1)},
	// HTMLEscape(w io.Writer, b []byte)
	"text/template.HTMLEscape": {From: args(1), ToArgs: args(0)},
	// HTMLEscapeString(s string) string
	"text/template.HTMLEscapeString": firstToResult,
	// HTMLEscaper(args ...interface{}) string
	"text/template.HTMLEscaper": firstToResult,
	// JSEscape(w io.Writer, b []byte)
	"text/template.JSEscape": {From: args(1), ToArgs: args(0)},
	// JSEscapeString(s string) string
	"text/template.JSEscapeString": firstToResult,
	// JSEscaper(args ...interface{}) string
	"text/template.JSEscaper": firstToResult,
	// URLQueryEscaper(args ...interface{}) string
	"text/template.URLQueryEscaper": firstToResult,
	// (t *Template) ExecuteTemplate(wr io.Writer, name string, data interface{}) error
	"(*html/template.Template).ExecuteTemplate": {From: args(3), ToArgs: args(1)},
	// (t *Template) Execute(wr io.Writer, data interface{}) error
	"(*html/template.Template).Execute": {From: args(2), ToArgs: args(1)},
	// HTMLEscape(w io.Writer, b []byte)
	"html/template.HTMLEscape": {From: args(1), ToArgs: args(0)},
	// HTMLEscapeString(s string) string
	"html/template.HTMLEscapeString": firstToResult,
	// HTMLEscaper(args ...interface{}) string
	"html/template.HTMLEscaper": firstToResult,
	// JSEscape(w io.Writer, b []byte)
	"html/template.JSEscape": {From: args(1), ToArgs: args(0)},
	// JSEscapeString(s string) string
	"html/template.JSEscapeString": firstToResult,
	// JSEscaper(args ...interface{}) string
	"html/template.JSEscaper": firstToResult,
	// URLQueryEscaper(args ...interface{}) string
	"html/template.URLQueryEscaper": firstToResult,
	// Clean(path string) string
	"path.Clean": firstToResult,
	// Split(path string) (dir, file string)
	"path.Split": {From: args(0), ToResults: true},
	// Join(elem ...string) string
	"path.Join": firstToResult,
	// Base(path string) string
	"path.Base": firstToResult,
	// Clean(path string) string
	"path/filepath.Clean": firstToResult,
	// ToSlash(path string) string
	"path/filepath.ToSlash": firstToResult,
	// FromSlash(path string) string
	"path/filepath.FromSlash": firstToResult,
	// SplitList(path string) []string
	"path/filepath.SplitList": firstToResult,
	// Split(path string) (dir, file string)
	"path/filepath.Split": {From: args(0), ToResults: true},
	// Join(elem ...string) string
	"path/filepath.Join": firstToResult,
	// Ext(path string) string
	"path/filepath.Ext": firstToResult,
	// Abs(path string) (string, error)
	"path/filepath.Abs": firstToResult,
	// Base(path string) string
	"path/filepath.Base": firstToResult,
	// New(out io.Writer, prefix string, flag int) *Logger
	"log.New": firstToResult,
	// (l *Logger) SetOutput(w io.Writer)
	"(*log.Logger).SetOutput": {From: args(1), ToArgs: args(0)},
	// (l *Logger) Writer() io.Writer
	"(*log.Logger).Writer": firstToResult,
}

// methodKey represents an interface method by its name and its signature.
// The signature is a string representation containing only the types of
// the arguments and return values.
type methodKey struct {
	name, signature string
}

// methodSummaries contains summaries for common interface methods
// such as Write or Read. They apply both to calls through an interface value
// and to static calls of a concrete method with a matching signature.
var methodSummaries = map[methodKey]Summary{
	// io.Reader
	// Read(p []byte) (n int, err error)
	{"Read", "([]byte)(int,error)"}: {From: args(0), ToArgs: args(1)},
	// io.Writer
	// Write(p []byte) (n int, err error)
	{"Write", "([]byte)(int,error)"}: {From: args(1), ToArgs: args(0)},
	// io.ReaderFrom
	// ReadFrom(r Reader) (n int64, err error)
	{"ReadFrom", "(Reader)(int64,error)"}: {From: args(1), ToArgs: args(0)},
	// io.WriterTo
	// WriteTo(w Writer) (n int64, err error)
	{"WriteTo", "(Writer)(int64,error)"}: {From: args(0), ToArgs: args(1)},
	// io.ReaderAt
	// ReadAt(p []byte, off int64) (n int, err error)
	{"ReadAt", "([]byte,int64)(int,error)"}: {From: args(0), ToArgs: args(1)},
	// io.WriterAt
	// WriteAt(p []byte, off int64) (n int, err error)
	{"WriteAt", "([]byte,int64)(int,error)"}: {From: args(1), ToArgs: args(0)},
	// io.StringWriter
	// WriteString(s string) (n int, err error)
	{"WriteString", "(string)(int,error)"}: {From: args(1), ToArgs: args(0)},
	// fmt.Stringer
	// String() string
	{"String", "()(string)"}: {From: args(0), ToResults: true},
	// fmt.GoStringer
	// GoString() string
	{"GoString", "()(string)"}: {From: args(0), ToResults: true},
	// error
	// Error() string
	{"Error", "()(string)"}: {From: args(0), ToResults: true},
	// Unwrap() error
	{"Unwrap", "()(error)"}: {From: args(0), ToResults: true},
	// Bytes() []byte
	{"Bytes", "()([]byte)"}: {From: args(0), ToResults: true},
	// context.Context
	// Err() error
	// Value(key interface{}) interface{}
	{"Err", "()(error)"}: {From: args(0), ToResults: true},
	{"Value", "(interface{})(interface{})"}: {From: args(0), ToResults: true},
	// Since Go 1.18 the declaration reads Value(key any) any.
	{"Value", "(any)(any)"}: {From: args(0), ToResults: true},
}
