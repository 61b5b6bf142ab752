package sshkey

// Key is one encoding of an issued SSH credential, ready for delivery.
type Key struct {
	// Private is the private key material (PEM, OpenSSH, or PPK encoded).
	Private string

	// Public is the matching public key in authorized_keys format.
	// Optional; written alongside the private key when present.
	Public string

	// Format is the encoding name, e.g. "pem", "openssh", "ppk".
	// Used in delivered filenames.
	Format string

	// Algorithm is the key algorithm, e.g. "rsa", "ed25519".
	// Used in delivered filenames.
	Algorithm string
}
