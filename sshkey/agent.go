package sshkey

import (
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"
)

// AgentConnection wraps an SSH agent with its underlying connection
// for proper resource cleanup.
type AgentConnection struct {
	agent.ExtendedAgent
	conn io.Closer
}

// Close closes the underlying connection to the SSH agent.
func (a *AgentConnection) Close() error {
	if a.conn != nil {
		return a.conn.Close()
	}
	return nil
}

// Agent connects to the SSH agent via SSH_AUTH_SOCK.
// The returned AgentConnection should be closed when done to avoid resource leaks.
func Agent() (*AgentConnection, error) {
	socket := os.Getenv("SSH_AUTH_SOCK")
	if socket == "" {
		return nil, ErrNoSSHAgent
	}

	conn, err := net.Dial("unix", socket)
	if err != nil {
		return nil, fmt.Errorf("connect to ssh-agent: %w", err)
	}

	return &AgentConnection{
		ExtendedAgent: agent.NewClient(conn),
		conn:          conn,
	}, nil
}

// AddToAgent loads a private key into the agent with a lifetime constraint
// derived from the credential's expiration, so the agent expires the key on
// its own. Existing agent keys are left untouched.
func AddToAgent(ag agent.Agent, key Key, expiresAt time.Time, comment string) error {
	priv, err := ssh.ParseRawPrivateKey([]byte(key.Private))
	if err != nil {
		return fmt.Errorf("%w (%s/%s): %v", ErrUnsupportedKey, key.Format, key.Algorithm, err)
	}

	added := agent.AddedKey{
		PrivateKey: priv,
		Comment:    comment,
	}
	if remaining := time.Until(expiresAt); remaining > 0 {
		added.LifetimeSecs = uint32(remaining.Seconds())
	}

	if err := ag.Add(added); err != nil {
		return fmt.Errorf("add key to ssh-agent: %w", err)
	}
	return nil
}

// CountAgentKeys returns the number of keys the agent currently holds.
func CountAgentKeys(ag agent.Agent) (int, error) {
	keys, err := ag.List()
	if err != nil {
		return 0, fmt.Errorf("list agent keys: %w", err)
	}
	return len(keys), nil
}
