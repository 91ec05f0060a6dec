package tcp

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadAll(t *testing.T) {
	const timeout = 50 * time.Millisecond

	t.Run("peer closes", func(t *testing.T) {
		client, server := net.Pipe()

		go func() {
			_, _ = client.Write([]byte("GET / HTTP/1.1\r\n\r\n"))
			_ = client.Close()
		}()

		data, err := ReadAll(server, time.Second, 4)
		require.NoError(t, err)
		require.Equal(t, []byte("GET / HTTP/1.1\r\n\r\n"), data)
	})

	t.Run("fragments are concatenated in order", func(t *testing.T) {
		client, server := net.Pipe()

		go func() {
			for _, fragment := range []string{"GET ", "/download", " HTTP/1.1", "\r\n\r\n"} {
				_, _ = client.Write([]byte(fragment))
			}
			_ = client.Close()
		}()

		data, err := ReadAll(server, time.Second, 4)
		require.NoError(t, err)
		require.Equal(t, []byte("GET /download HTTP/1.1\r\n\r\n"), data)
	})

	t.Run("idle timeout ends accumulation", func(t *testing.T) {
		client, server := net.Pipe()
		defer client.Close()
		defer server.Close()

		go func() {
			_, _ = client.Write([]byte("partial"))
			// and then the peer goes silent without closing
		}()

		data, err := ReadAll(server, timeout, 64)
		require.NoError(t, err)
		require.Equal(t, []byte("partial"), data)
	})

	t.Run("nothing sent at all", func(t *testing.T) {
		client, server := net.Pipe()
		defer client.Close()
		defer server.Close()

		data, err := ReadAll(server, timeout, 64)
		require.NoError(t, err)
		require.Empty(t, data)
	})
}

func TestServerSequentialAccept(t *testing.T) {
	sock, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var served int
	server := NewServer(sock, func(conn net.Conn) {
		served++
		_ = conn.Close()
	})

	done := make(chan error)
	go func() {
		done <- server.Start()
	}()

	for i := 0; i < 3; i++ {
		conn, err := net.Dial("tcp", sock.Addr().String())
		require.NoError(t, err)
		// wait for the server to close its side, so the next dial is
		// guaranteed to be accepted after this one was served
		buff := make([]byte, 1)
		_, _ = conn.Read(buff)
		_ = conn.Close()
	}

	require.NoError(t, server.Stop())
	require.ErrorIs(t, <-done, ErrShutdown)
	require.Equal(t, 3, served)
}

func TestServerStopWhileAccepting(t *testing.T) {
	sock, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := NewServer(sock, func(conn net.Conn) {
		_ = conn.Close()
	})

	done := make(chan error)
	go func() {
		done <- server.Start()
	}()

	// stop from another goroutine while Start is blocked inside Accept
	require.NoError(t, server.Stop())
	require.ErrorIs(t, <-done, ErrShutdown)
}
