package database_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"testing"

	"github.com/bionicotaku/lingo-services-greeter/internal/infrastructure/database"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5/pgproto3"
	"github.com/stretchr/testify/require"
)

const insertSQL = `INSERT INTO "greeting_log" (message, client_address, received_at_server) VALUES ($1, $2, $3)`

type parseMsg struct {
	name  string
	query string
}

type bindMsg struct {
	statement string
	params    []string
}

// wireRecorder 是一个最小的 PostgreSQL 后端，记录客户端发出的协议消息。
type wireRecorder struct {
	mu      sync.Mutex
	queries []string
	parses  []parseMsg
	binds   []bindMsg
}

func (w *wireRecorder) snapshot() ([]string, []parseMsg, []bindMsg) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.queries...), append([]parseMsg(nil), w.parses...), append([]bindMsg(nil), w.binds...)
}

func startWireRecorder(t *testing.T) (string, *wireRecorder) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	rec := &wireRecorder{}
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			go rec.serve(c)
		}
	}()
	return fmt.Sprintf("postgres://app:secret@%s/greeter?sslmode=disable", ln.Addr().String()), rec
}

func (w *wireRecorder) serve(c net.Conn) {
	defer c.Close()
	be := pgproto3.NewBackend(c, c)

	if err := w.startup(be, c); err != nil {
		return
	}

	statements := map[string]string{}
	var portal string
	for {
		msg, err := be.Receive()
		if err != nil {
			return
		}
		switch m := msg.(type) {
		case *pgproto3.Query:
			w.mu.Lock()
			w.queries = append(w.queries, m.String)
			w.mu.Unlock()
			if strings.HasPrefix(strings.TrimSpace(m.String), "--") {
				be.Send(&pgproto3.EmptyQueryResponse{})
			} else {
				be.Send(&pgproto3.CommandComplete{CommandTag: []byte("INSERT 0 1")})
			}
			be.Send(&pgproto3.ReadyForQuery{TxStatus: 'I'})
			if be.Flush() != nil {
				return
			}
		case *pgproto3.Parse:
			w.mu.Lock()
			w.parses = append(w.parses, parseMsg{name: m.Name, query: m.Query})
			w.mu.Unlock()
			statements[m.Name] = m.Query
			be.Send(&pgproto3.ParseComplete{})
		case *pgproto3.Bind:
			params := make([]string, len(m.Parameters))
			for i, p := range m.Parameters {
				params[i] = string(p)
			}
			w.mu.Lock()
			w.binds = append(w.binds, bindMsg{statement: m.PreparedStatement, params: params})
			w.mu.Unlock()
			portal = statements[m.PreparedStatement]
			be.Send(&pgproto3.BindComplete{})
		case *pgproto3.Describe:
			query := portal
			if m.ObjectType == 'S' {
				query = statements[m.Name]
				oids := make([]uint32, strings.Count(query, "$"))
				for i := range oids {
					oids[i] = 25
				}
				be.Send(&pgproto3.ParameterDescription{ParameterOIDs: oids})
			}
			if isVersionQuery(query) {
				be.Send(&pgproto3.RowDescription{Fields: []pgproto3.FieldDescription{{
					Name:         []byte("version"),
					DataTypeOID:  25,
					DataTypeSize: -1,
					TypeModifier: -1,
				}}})
			} else {
				be.Send(&pgproto3.NoData{})
			}
		case *pgproto3.Execute:
			if isVersionQuery(portal) {
				be.Send(&pgproto3.DataRow{Values: [][]byte{[]byte("PostgreSQL 16.4 (wire recorder)")}})
				be.Send(&pgproto3.CommandComplete{CommandTag: []byte("SELECT 1")})
			} else {
				be.Send(&pgproto3.CommandComplete{CommandTag: []byte("INSERT 0 1")})
			}
		case *pgproto3.Sync:
			be.Send(&pgproto3.ReadyForQuery{TxStatus: 'I'})
			if be.Flush() != nil {
				return
			}
		case *pgproto3.Terminate:
			return
		}
	}
}

func (w *wireRecorder) startup(be *pgproto3.Backend, c net.Conn) error {
	for {
		msg, err := be.ReceiveStartupMessage()
		if err != nil {
			return err
		}
		switch msg.(type) {
		case *pgproto3.SSLRequest, *pgproto3.GSSEncRequest:
			if _, err := c.Write([]byte("N")); err != nil {
				return err
			}
			continue
		case *pgproto3.StartupMessage:
			be.Send(&pgproto3.AuthenticationOk{})
			be.Send(&pgproto3.ParameterStatus{Name: "server_version", Value: "16.4"})
			be.Send(&pgproto3.ParameterStatus{Name: "client_encoding", Value: "UTF8"})
			be.Send(&pgproto3.ParameterStatus{Name: "standard_conforming_strings", Value: "on"})
			be.Send(&pgproto3.BackendKeyData{ProcessID: 42, SecretKey: 7})
			be.Send(&pgproto3.ReadyForQuery{TxStatus: 'I'})
			return be.Flush()
		default:
			return errors.New("unexpected startup message")
		}
	}
}

func isVersionQuery(q string) bool {
	return strings.Contains(q, "version()")
}

func TestSessionInsertSendsBindParameters(t *testing.T) {
	values := []string{"Not hello O'Brien!", "127.0.0.1:5000", "2026-10-19T08:30:00.123456"}

	cases := []struct {
		name          string
		prepared      bool
		statementName string
	}{
		{name: "prepared statement", prepared: true, statementName: "insert_greeting_log"},
		{name: "unnamed statement", prepared: false, statementName: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dsn, rec := startWireRecorder(t)

			session, cleanup, err := database.Connect(context.Background(), database.Config{
				DSN:                dsn,
				Table:              "greeting_log",
				PreparedStatements: tc.prepared,
			}, log.NewStdLogger(io.Discard))
			require.NoError(t, err)

			rows, err := session.Insert(context.Background(), values[0], values[1], values[2])
			require.NoError(t, err)
			require.EqualValues(t, 1, rows)
			cleanup()

			queries, parses, binds := rec.snapshot()
			for _, q := range queries {
				require.NotContains(t, q, "INSERT", "insert sent as a simple query")
				require.NotContains(t, q, "O'Brien")
			}

			require.Contains(t, parses, parseMsg{name: tc.statementName, query: insertSQL})
			for _, p := range parses {
				require.NotContains(t, p.query, "O'Brien")
			}
			require.Contains(t, binds, bindMsg{statement: tc.statementName, params: values})
		})
	}
}
