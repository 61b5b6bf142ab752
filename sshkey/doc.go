// Package sshkey delivers short-lived SSH key material to a local sink.
//
// Delivery prefers a running SSH agent, discovered via SSH_AUTH_SOCK. Keys
// are added with a lifetime constraint so the agent drops them when the
// credential expires. When no agent is reachable (or it accepts none of the
// offered encodings), keys are written under ~/.ssh instead:
//
//	id_cyberark_session_<format>_<algorithm>_<suffix>       (0600)
//	id_cyberark_session_<format>_<algorithm>_<suffix>.pub   (0644)
//
// The random suffix keeps each run's files distinct. Delivery only ever adds
// key material: existing agent keys and key files, including those from
// earlier runs, are never removed or overwritten.
//
//	result, err := sshkey.Deliver(keys, expiresAt, sshkey.Options{
//	    Comment: "cyberark-session:alice@pam.example.com",
//	})
//	if err != nil {
//	    ...
//	}
//	switch result.Method {
//	case sshkey.MethodAgent:
//	    fmt.Printf("added %d key(s) to ssh-agent\n", result.Added)
//	case sshkey.MethodFile:
//	    fmt.Println("wrote", result.Paths)
//	}
package sshkey
