// Package `chatsrv` implements server application for text chat over TCP.
//
// Every line sent by a client is relayed to all other connected clients,
// lines typed into the server console are relayed to everyone as server messages.
//
// To compile chat server locally, run from package directory:
//
//	go install .
//
// Or quickly launch server with command:
//
//	go run . -port 9999 -max-clients 10
//
// and connect with any TCP client, e.g. `nc localhost 9999`.
// Browser clients may join over WebSocket when `-ws` address is set.
package main
