// Package dispatch routes a parsed command's verb to the Engine call that
// implements it and encodes the result as a wire reply (§4.4/§6.1). Dispatch
// is a pure function of (tokens, engine): it never retains state between
// calls and never panics outward — a recover() guard converts any unexpected
// failure into an error reply.
package dispatch

import (
	"strconv"
	"strings"

	"github.com/edirooss/ramdb-server/internal/engine"
)

// Dispatch routes tokens to the Engine operation its verb names and
// returns the encoded reply. An empty tokens slice is itself an error
// (§7 "Empty command").
func Dispatch(tokens []string, e *engine.Engine) (reply []byte) {
	defer func() {
		if r := recover(); r != nil {
			reply = errorReply("internal error")
		}
	}()

	if len(tokens) == 0 {
		return errorReply("empty command")
	}

	verb := strings.ToUpper(tokens[0])
	args := tokens[1:]

	switch verb {
	case "PING":
		return simpleString(e.Ping())
	case "ECHO":
		if len(args) < 1 {
			return arityError("ECHO", "message")
		}
		return bulkReply([]byte(e.Echo(args[0])), true)
	case "DEV":
		return simpleString(e.Dev())

	case "SET":
		if len(args) < 2 {
			return arityError("SET", "key value")
		}
		e.Set(args[0], []byte(args[1]))
		return simpleString("OK")
	case "GET":
		if len(args) < 1 {
			return arityError("GET", "key")
		}
		v, ok := e.Get(args[0])
		return bulkReply(v, ok)
	case "KEYS":
		return arrayReply(toBulks(e.Keys()))
	case "TYPE":
		if len(args) < 1 {
			return arityError("TYPE", "key")
		}
		return simpleString(e.Type(args[0]))
	case "DEL", "DELETE", "UNLINK":
		if len(args) < 1 {
			return arityError(verb, "key")
		}
		if e.Del(args[0]) {
			return integerReply(1)
		}
		return integerReply(0)
	case "EXPIRE":
		if len(args) < 2 {
			return arityError("EXPIRE", "key seconds")
		}
		if !e.Expire(args[0], args[1]) {
			return errorReply("Failed to set expiry")
		}
		return integerReply(1)
	case "RENAME":
		if len(args) < 2 {
			return arityError("RENAME", "src dst")
		}
		if !e.Rename(args[0], args[1]) {
			return errorReply("Failed to rename key")
		}
		return simpleString("OK")

	case "LPUSH":
		if len(args) < 2 {
			return arityError("LPUSH", "key value [value ...]")
		}
		return integerReply(e.LPush(args[0], toBytesSlice(args[1:])))
	case "RPUSH":
		if len(args) < 2 {
			return arityError("RPUSH", "key value [value ...]")
		}
		return integerReply(e.RPush(args[0], toBytesSlice(args[1:])))
	case "LPOP":
		if len(args) < 1 {
			return arityError("LPOP", "key")
		}
		v, ok := e.LPop(args[0])
		return bulkReply(v, ok)
	case "RPOP":
		if len(args) < 1 {
			return arityError("RPOP", "key")
		}
		v, ok := e.RPop(args[0])
		return bulkReply(v, ok)
	case "LLEN":
		if len(args) < 1 {
			return arityError("LLEN", "key")
		}
		return integerReply(e.LLen(args[0]))
	case "LINDEX":
		if len(args) < 2 {
			return arityError("LINDEX", "key index")
		}
		if _, err := strconv.Atoi(args[1]); err != nil {
			return errorReply("Invalid index")
		}
		v, ok := e.LIndex(args[0], args[1])
		return bulkReply(v, ok)
	case "LSET":
		if len(args) < 3 {
			return arityError("LSET", "key index value")
		}
		if !e.LSet(args[0], args[1], []byte(args[2])) {
			return errorReply("Failed to set list element")
		}
		return simpleString("OK")
	case "LRANGE":
		if len(args) < 3 {
			return arityError("LRANGE", "key start stop")
		}
		items, ok := e.LRange(args[0], args[1], args[2])
		if !ok {
			return nilArrayReply()
		}
		return arrayReply(items)
	case "LREM":
		if len(args) < 3 {
			return arityError("LREM", "key count value")
		}
		n, ok := e.LRem(args[0], []byte(args[2]), args[1])
		if !ok {
			return errorReply("Invalid count")
		}
		return integerReply(n)

	case "HSET":
		if len(args) < 3 {
			return arityError("HSET", "key field value")
		}
		e.HSet(args[0], args[1], []byte(args[2]))
		return simpleString("OK")
	case "HGET":
		if len(args) < 2 {
			return arityError("HGET", "key field")
		}
		v, ok := e.HGet(args[0], args[1])
		return bulkReply(v, ok)
	case "HDEL":
		if len(args) < 2 {
			return arityError("HDEL", "key field")
		}
		if e.HDel(args[0], args[1]) {
			return integerReply(1)
		}
		return integerReply(0)
	case "HEXISTS":
		if len(args) < 2 {
			return arityError("HEXISTS", "key field")
		}
		if e.HExists(args[0], args[1]) {
			return integerReply(1)
		}
		return integerReply(0)
	case "HLEN":
		if len(args) < 1 {
			return arityError("HLEN", "key")
		}
		return integerReply(e.HLen(args[0]))
	case "HKEYS":
		if len(args) < 1 {
			return arityError("HKEYS", "key")
		}
		return arrayReply(toBulks(e.HKeys(args[0])))
	case "HVALS":
		if len(args) < 1 {
			return arityError("HVALS", "key")
		}
		return arrayReply(e.HVals(args[0]))
	case "HGETALL":
		if len(args) < 1 {
			return arityError("HGETALL", "key")
		}
		return arrayReply(e.HGetAll(args[0]))
	case "HMSET":
		if len(args) < 3 || len(args[1:])%2 != 0 {
			return arityError("HMSET", "key field value [field value ...]")
		}
		if err := e.HMSet(args[0], toBytesSlice(args[1:])); err != nil {
			return errorReply(err.Error())
		}
		return simpleString("OK")

	case "FLUSHALL":
		e.FlushAll()
		return simpleString("OK")

	default:
		return errorReply("unknown command '" + tokens[0] + "'")
	}
}

// arityError formats the "verb-specific error message naming the missing
// arguments" §7 calls for.
func arityError(verb, want string) []byte {
	return errorReply("wrong number of arguments for '" + verb + "' (expected: " + want + ")")
}

func toBulks(ss []string) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = []byte(s)
	}
	return out
}

func toBytesSlice(ss []string) [][]byte {
	return toBulks(ss)
}
