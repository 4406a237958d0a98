package main

import (
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/wtask/chatrelay/internal/chat"
	"github.com/wtask/chatrelay/internal/chat/history"
	"github.com/wtask/chatrelay/internal/wsgate"
)

func main() {
	logger := stdlog.New(os.Stderr, "chatsrv:"+Version+" ", stdlog.Ldate|stdlog.Ltime)
	logger.Printf("Started with config: %+v", Config)

	node := net.JoinHostPort(Config.IPAddress, fmt.Sprintf("%d", Config.Port))
	listener, err := net.Listen("tcp", node)
	if err != nil {
		logger.Println("ERR", "Unable to listen TCP:", err)
		os.Exit(1)
	}

	server, err := newServer(logger)
	if err != nil {
		logger.Println("ERR", "Can't start chat server:", err)
		listener.Close()
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	stop := func() {
		select {
		case sig <- syscall.SIGTERM:
		default:
		}
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, chat.ErrServerClosed) {
			logger.Println("ERR", "Chat server failed:", err)
			stop()
		}
	}()

	var gateway *http.Server
	if Config.WebSocketAddress != "" {
		gateway = &http.Server{Addr: Config.WebSocketAddress, Handler: wsHandler(server, logger)}
		go func() {
			logger.Println("Websocket gateway listen", Config.WebSocketAddress)
			if err := gateway.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Println("ERR", "Websocket gateway failed:", err)
				stop()
			}
		}()
	}

	go func() {
		if err := server.RelayConsole(os.Stdin); err != nil && !errors.Is(err, chat.ErrServerClosed) {
			logger.Println("ERR", "Console relay stopped:", err)
		}
	}()
	logger.Println("Chat server has started.")

	<-sig
	logger.Println("Got stop signal")
	if gateway != nil {
		// hijacked websocket connections are closed by chat server
		gateway.Close()
	}
	logger.Println("Chat server stopped in", server.Shutdown(Config.ShutdownTimeout), ", bye")
}

func newServer(logger *stdlog.Logger) (*chat.Server, error) {
	// history keeps one line at least, greets are disabled with zero ClientHistoryGreets
	stack, err := history.NewStack(Config.ClientHistoryGreets + 1)
	if err != nil {
		return nil, err
	}
	return chat.NewServer(
		chat.WithLogger(logger),
		chat.WithDisplay(os.Stdout),
		chat.WithCapacity(Config.MaxClients),
		chat.WithBufferSize(Config.BufferSize),
		chat.WithQueueSize(Config.QueueSize),
		chat.WithWriteTimeout(Config.WriteTimeout),
		chat.WithIdleTimeout(Config.ClientIdleTimeout),
		chat.WithResolver(net.DefaultResolver, Config.LookupTimeout),
		chat.WithMessageHistory(stack, Config.ClientHistoryGreets),
	)
}

func wsHandler(server *chat.Server, logger *stdlog.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", wsgate.New(server, logger))
	return mux
}
