package network

import (
	"bufio"
	"bytes"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/drake/tinycli/console"
)

func startServer(t *testing.T, cmds []console.Command) (*Server, net.Addr) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := NewServer(console.Config{Commands: cmds, Banner: "welcome\r\n"})
	go s.Serve(ln)
	t.Cleanup(func() { s.Close() })
	return s, ln.Addr()
}

func dial(t *testing.T, addr net.Addr) net.Conn {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr.String(), 2*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetDeadline(time.Now().Add(5 * time.Second))
	return conn
}

// readUntil reads from r until the accumulated output contains want.
func readUntil(t *testing.T, r *bufio.Reader, want string) string {
	t.Helper()
	var buf bytes.Buffer
	for !strings.Contains(buf.String(), want) {
		b, err := r.ReadByte()
		if err != nil {
			t.Fatalf("read (got %q so far): %v", buf.String(), err)
		}
		buf.WriteByte(b)
	}
	return buf.String()
}

func TestServerSession(t *testing.T) {
	cmds := []console.Command{{
		Name: "ping",
		Help: "Reply with pong",
		Handler: func(ctx *console.Context, args []string) {
			ctx.Println("pong")
		},
	}}
	_, addr := startServer(t, cmds)

	conn := dial(t, addr)
	r := bufio.NewReader(conn)

	readUntil(t, r, "welcome\r\n> ")

	if _, err := conn.Write([]byte("ping\r")); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := readUntil(t, r, "pong\r\n> ")
	if !strings.Contains(got, "ping\r\n") {
		t.Fatalf("missing command echo in %q", got)
	}
}

func TestServerUnknownCommand(t *testing.T) {
	_, addr := startServer(t, nil)
	conn := dial(t, addr)
	r := bufio.NewReader(conn)

	readUntil(t, r, "> ")
	if _, err := conn.Write([]byte("nope\r")); err != nil {
		t.Fatalf("write: %v", err)
	}
	readUntil(t, r, "Unknown command: nope\r\nType 'help' for available commands.\r\n> ")
}

func TestServerFiltersTelnetNegotiation(t *testing.T) {
	cmds := []console.Command{{
		Name:    "ok",
		Handler: func(ctx *console.Context, args []string) { ctx.Println("fine") },
	}}
	_, addr := startServer(t, cmds)
	conn := dial(t, addr)
	r := bufio.NewReader(conn)

	readUntil(t, r, "> ")

	// A WILL option interleaved with the command must be stripped and
	// refused without corrupting the line.
	payload := []byte{'o', cmdIAC, cmdWILL, 34, 'k', '\r'}
	if _, err := conn.Write(payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := readUntil(t, r, "fine\r\n> ")
	if !strings.Contains(got, string([]byte{cmdIAC, cmdDONT, 34})) {
		t.Fatalf("no DONT refusal in %q", got)
	}
}

func TestServerIndependentSessions(t *testing.T) {
	_, addr := startServer(t, nil)

	c1 := dial(t, addr)
	c2 := dial(t, addr)
	r1 := bufio.NewReader(c1)
	r2 := bufio.NewReader(c2)
	readUntil(t, r1, "> ")
	readUntil(t, r2, "> ")

	// Typing on one session must not echo on the other.
	if _, err := c1.Write([]byte("abc")); err != nil {
		t.Fatalf("write: %v", err)
	}
	readUntil(t, r1, "abc")

	c2.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if b, err := r2.ReadByte(); err == nil {
		t.Fatalf("session 2 received %q from session 1", b)
	}
}

func TestServerClose(t *testing.T) {
	s, addr := startServer(t, nil)
	conn := dial(t, addr)
	r := bufio.NewReader(conn)
	readUntil(t, r, "> ")

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// The live session is torn down.
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		if _, err := r.ReadByte(); err != nil {
			break
		}
	}

	// And no new connections are accepted.
	if c, err := net.DialTimeout("tcp", addr.String(), 500*time.Millisecond); err == nil {
		c.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
		one := make([]byte, 1)
		if _, err := c.Read(one); err == nil {
			t.Fatal("closed server still serving")
		}
		c.Close()
	}
}
