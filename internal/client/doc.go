// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the finance server.
//
// The client logs in with the configured credentials, runs one command
// through the server adapter and prints the result as indented JSON.
package client
