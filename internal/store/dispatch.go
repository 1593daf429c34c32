package store

import (
	"sort"
	"strconv"

	"keyspace/internal/wire"
)

// Dispatch maps a decoded command's argument vector onto the
// corresponding Store method and wraps the result in the tagged
// response the wire protocol expects. Unknown commands, wrong arity
// and semantic errors are all surfaced here, never inside the core
// data structures.
func (s *Store) Dispatch(args []string) wire.Response {
	if len(args) == 0 {
		return wire.Err{Code: wire.ErrUnknown, Msg: "empty command"}
	}

	switch args[0] {
	case "get":
		return s.dispatchGet(args)
	case "set":
		return s.dispatchSet(args)
	case "del":
		return s.dispatchDel(args)
	case "keys":
		return s.dispatchKeys(args)
	case "dbsize":
		return s.dispatchDBSize(args)
	case "zadd":
		return s.dispatchZAdd(args)
	case "zrem":
		return s.dispatchZRem(args)
	case "zscore":
		return s.dispatchZScore(args)
	case "zrank":
		return s.dispatchZRank(args)
	case "zquery":
		return s.dispatchZQuery(args)
	case "pexpire":
		return s.dispatchPexpire(args)
	case "pttl":
		return s.dispatchPttl(args)
	case "persist":
		return s.dispatchPersist(args)
	default:
		return wire.Err{Code: wire.ErrUnknown, Msg: "unknown command '" + args[0] + "'"}
	}
}

func arity(args []string, want int) bool { return len(args) == want }

func argErr(cmd string) wire.Response {
	return wire.Err{Code: wire.ErrUnknown, Msg: "wrong number of arguments for '" + cmd + "'"}
}

func (s *Store) dispatchGet(args []string) wire.Response {
	if !arity(args, 2) {
		return argErr("get")
	}
	val, ok, wrongType := s.Get(args[1])
	if wrongType {
		return responseErr(errWrongType)
	}
	if !ok {
		return wire.Nil{}
	}
	return wire.Str{Val: val}
}

func (s *Store) dispatchSet(args []string) wire.Response {
	if !arity(args, 3) {
		return argErr("set")
	}
	s.Set(args[1], args[2])
	return wire.Nil{}
}

func (s *Store) dispatchDel(args []string) wire.Response {
	if len(args) < 2 {
		return argErr("del")
	}
	return wire.Int{Val: s.Del(args[1:]...)}
}

func (s *Store) dispatchKeys(args []string) wire.Response {
	if !arity(args, 1) {
		return argErr("keys")
	}
	keys := s.Keys()
	sort.Strings(keys)
	elements := make([]wire.Response, len(keys))
	for i, k := range keys {
		elements[i] = wire.Str{Val: k}
	}
	return wire.Arr{Elements: elements}
}

func (s *Store) dispatchDBSize(args []string) wire.Response {
	if !arity(args, 1) {
		return argErr("dbsize")
	}
	return wire.Int{Val: s.DBSize()}
}

func (s *Store) dispatchZAdd(args []string) wire.Response {
	if !arity(args, 4) {
		return argErr("zadd")
	}
	score, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return wire.Err{Code: wire.ErrUnknown, Msg: "score is not a valid float"}
	}
	zs, _, zerr := s.zsetFor(args[1], true)
	if zerr != nil {
		return responseErr(zerr)
	}
	if zs.Insert(args[3], score) {
		return wire.Int{Val: 1}
	}
	return wire.Int{Val: 0}
}

func (s *Store) dispatchZRem(args []string) wire.Response {
	if !arity(args, 3) {
		return argErr("zrem")
	}
	zs, ok, zerr := s.zsetFor(args[1], false)
	if zerr != nil {
		return responseErr(zerr)
	}
	if !ok || zs == nil {
		return wire.Int{Val: 0}
	}
	if zs.Remove(args[2]) {
		return wire.Int{Val: 1}
	}
	return wire.Int{Val: 0}
}

func (s *Store) dispatchZScore(args []string) wire.Response {
	if !arity(args, 3) {
		return argErr("zscore")
	}
	zs, ok, zerr := s.zsetFor(args[1], false)
	if zerr != nil {
		return responseErr(zerr)
	}
	if !ok || zs == nil {
		return wire.Nil{}
	}
	pair := zs.Lookup(args[2])
	if pair == nil {
		return wire.Nil{}
	}
	return wire.Dbl{Val: pair.Score}
}

func (s *Store) dispatchZRank(args []string) wire.Response {
	if !arity(args, 3) {
		return argErr("zrank")
	}
	zs, ok, zerr := s.zsetFor(args[1], false)
	if zerr != nil {
		return responseErr(zerr)
	}
	if !ok || zs == nil {
		return wire.Nil{}
	}
	rank := zs.Rank(args[2])
	if rank < 0 {
		return wire.Nil{}
	}
	return wire.Int{Val: rank}
}

// zquery key score member offset limit
func (s *Store) dispatchZQuery(args []string) wire.Response {
	if !arity(args, 6) {
		return argErr("zquery")
	}
	score, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return wire.Err{Code: wire.ErrUnknown, Msg: "score is not a valid float"}
	}
	member := args[3]
	offset, err := strconv.ParseInt(args[4], 10, 64)
	if err != nil {
		return wire.Err{Code: wire.ErrUnknown, Msg: "offset is not a valid integer"}
	}
	limit, err := strconv.ParseInt(args[5], 10, 64)
	if err != nil {
		return wire.Err{Code: wire.ErrUnknown, Msg: "limit is not a valid integer"}
	}
	if limit <= 0 || limit > s.zsetQueryLimit {
		limit = s.zsetQueryLimit
	}

	zs, ok, zerr := s.zsetFor(args[1], false)
	if zerr != nil {
		return responseErr(zerr)
	}
	if !ok || zs == nil {
		return wire.Arr{}
	}

	pairs := zs.FindAllGE(score, member, offset, limit)
	elements := make([]wire.Response, 0, len(pairs))
	for _, p := range pairs {
		elements = append(elements, wire.Str{Val: p.Name}, wire.Dbl{Val: p.Score})
	}
	return wire.Arr{Elements: elements}
}

func (s *Store) dispatchPexpire(args []string) wire.Response {
	if !arity(args, 3) {
		return argErr("pexpire")
	}
	ms, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return wire.Err{Code: wire.ErrUnknown, Msg: "ttl is not a valid integer"}
	}
	if s.Pexpire(args[1], ms) {
		return wire.Int{Val: 1}
	}
	return wire.Int{Val: 0}
}

func (s *Store) dispatchPttl(args []string) wire.Response {
	if !arity(args, 2) {
		return argErr("pttl")
	}
	return wire.Int{Val: s.Pttl(args[1])}
}

func (s *Store) dispatchPersist(args []string) wire.Response {
	if !arity(args, 2) {
		return argErr("persist")
	}
	if s.Persist(args[1]) {
		return wire.Int{Val: 1}
	}
	return wire.Int{Val: 0}
}
