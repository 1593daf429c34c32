// Command keyspaced listens for TCP connections speaking the wire
// protocol implemented by internal/wire and dispatches each decoded
// command against a single shared store.
package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"net"
	"sync"
	"time"

	"keyspace/internal/buf"
	"keyspace/internal/clock"
	"keyspace/internal/config"
	"keyspace/internal/dque"
	"keyspace/internal/store"
	"keyspace/internal/timer"
	"keyspace/internal/wire"
)

func main() {
	configPath := flag.String("config", "", "path to an optional TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalln("could not load config:", err.Error())
	}

	wire.MaxLen = cfg.MaxFrameLen

	ln, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		log.Fatalln("could not listen:", err.Error())
	}
	defer ln.Close()
	log.Println("keyspaced listening on", cfg.ListenAddr)

	srv := newServer(cfg)
	go srv.sweepIdle()

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Println("accept error:", err.Error())
			continue
		}
		go srv.serve(conn)
	}
}

// server bundles the shared keyspace with the bookkeeping needed to
// close connections that have gone idle too long.
type server struct {
	store *store.Store
	mu    sync.Mutex

	cfg *config.Config

	idleMu    sync.Mutex
	idleQueue *dque.Queue
}

func newServer(cfg *config.Config) *server {
	return &server{
		store:     store.New(clock.System, cfg.ZSetQueryLimit, cfg.MaxLoadFactor, cfg.RehashBatch),
		cfg:       cfg,
		idleQueue: dque.New(),
	}
}

type connEntry struct {
	timer.Idle
	conn net.Conn
}

func (s *server) sweepIdle() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.idleMu.Lock()
		for {
			front := s.idleQueue.Front()
			if front == nil {
				break
			}
			ce := front.Value.(*connEntry)
			if !ce.Expired() {
				break
			}
			s.idleQueue.Remove(front)
			ce.conn.Close()
		}
		s.idleMu.Unlock()
	}
}

func (s *server) serve(conn net.Conn) {
	defer conn.Close()

	ce := &connEntry{conn: conn}
	ce.Idle = *timer.NewIdle(clock.System, s.cfg.IdleTimeoutMs)
	ce.Node.Value = ce

	s.idleMu.Lock()
	s.idleQueue.Push(&ce.Node)
	s.idleMu.Unlock()

	defer func() {
		s.idleMu.Lock()
		s.idleQueue.Remove(&ce.Node)
		s.idleMu.Unlock()
	}()

	b := buf.New()
	chunk := make([]byte, 64*1024)

	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			b.Append(chunk[:n])

			s.idleMu.Lock()
			ce.Reset()
			s.idleQueue.Remove(&ce.Node)
			s.idleQueue.Push(&ce.Node)
			s.idleMu.Unlock()

			if err := s.drain(conn, b); err != nil {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Println("connection read error:", err.Error())
			}
			return
		}
	}
}

// drain decodes and answers every complete request currently buffered,
// stopping at the first incomplete or malformed frame.
func (s *server) drain(conn net.Conn, b *buf.Buffer) error {
	for {
		cmd, consumed, status := wire.UnmarshalRequest(b.Data())
		switch status {
		case wire.StatusIncomplete:
			return nil
		case wire.StatusTooBig, wire.StatusInvalid:
			return errors.New("malformed request")
		}
		b.Consume(consumed)

		s.mu.Lock()
		resp := s.store.Dispatch(cmd.Args)
		s.mu.Unlock()

		out := buf.New()
		wire.MarshalResponse(out, resp)
		if _, err := conn.Write(out.Data()); err != nil {
			return err
		}
	}
}
