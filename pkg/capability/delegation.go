package capability

// Delegation records a capability handed from grantor to grantee.
// Creating the record has no side effects; whether the grantor may actually
// delegate is checked separately against an available-capabilities set.
type Delegation struct {
	Capability Capability `json:"capability"`
	Grantor    string     `json:"grantor"`
	Grantee    string     `json:"grantee"`
}

// Revocation records the withdrawal of a capability from a holder.
type Revocation struct {
	Capability Capability `json:"capability"`
	Holder     string     `json:"holder"`
}

// Delegate builds a delegation record.
func Delegate(c Capability, grantor, grantee string) Delegation {
	return Delegation{Capability: c, Grantor: grantor, Grantee: grantee}
}

// Revoke builds a revocation record.
func Revoke(c Capability, holder string) Revocation {
	return Revocation{Capability: c, Holder: holder}
}

// DelegateAll builds one delegation record per capability.
func DelegateAll(caps []Capability, grantor, grantee string) []Delegation {
	out := make([]Delegation, 0, len(caps))
	for _, c := range caps {
		out = append(out, Delegate(c, grantor, grantee))
	}
	return out
}

// RevokeAll builds one revocation record per capability.
func RevokeAll(caps []Capability, holder string) []Revocation {
	out := make([]Revocation, 0, len(caps))
	for _, c := range caps {
		out = append(out, Revoke(c, holder))
	}
	return out
}

// ValidateDelegation reports whether the grantor's available capabilities
// actually cover the delegated capability.
func (l *Lattice) ValidateDelegation(d Delegation, available []Capability) bool {
	return l.Validate(d.Capability, available)
}
