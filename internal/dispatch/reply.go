package dispatch

import (
	"strconv"
	"strings"
)

// simpleString encodes a "+" reply (§6.1).
func simpleString(s string) []byte {
	return []byte("+" + s + "\r\n")
}

// errorReply encodes a "-Error: <reason>" reply (§6.1/§7).
func errorReply(reason string) []byte {
	return []byte("-Error: " + reason + "\r\n")
}

// integerReply encodes a ":<decimal>" reply.
func integerReply(n int) []byte {
	return []byte(":" + strconv.Itoa(n) + "\r\n")
}

// bulkReply encodes a bulk string, or "$-1\r\n" if !ok (§6.1).
func bulkReply(value []byte, ok bool) []byte {
	if !ok {
		return []byte("$-1\r\n")
	}
	var b strings.Builder
	b.WriteByte('$')
	b.WriteString(strconv.Itoa(len(value)))
	b.WriteString("\r\n")
	b.Write(value)
	b.WriteString("\r\n")
	return []byte(b.String())
}

// arrayReply encodes an array of bulk strings.
func arrayReply(items [][]byte) []byte {
	var b strings.Builder
	b.WriteByte('*')
	b.WriteString(strconv.Itoa(len(items)))
	b.WriteString("\r\n")
	for _, item := range items {
		b.Write(bulkReply(item, true))
	}
	return []byte(b.String())
}

// nilArrayReply encodes a null array — used where an enumeration-shaped
// command (LRANGE) reports absence rather than an empty array (§9 OQ-5).
func nilArrayReply() []byte {
	return []byte("*-1\r\n")
}
