/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package abe

import (
	"fmt"
	"math/big"

	"github.com/fentec-project/bn256"
)

// attrKind distinguishes the two roles an Attribute's embedded value can
// play. Reading a Public value from a Private-holding Attribute (or vice
// versa) is a TypeConfusion error rather than a panic.
type attrKind int

const (
	attrPublic attrKind = iota
	attrPrivate
)

// Attribute is a (name, node) pair where node is either a public Gt value
// (g^{s_i}, a public-key entry; g^{s_i·k}, a ciphertext entry) or a
// private Fr value (s_i, a master-key entry; share_i·s_i^{-1}, a
// secret-key entry).
type Attribute struct {
	Name string
	kind attrKind
	pub  *bn256.GT
	priv *big.Int
}

// Public returns the Gt value of a public Attribute, or TypeConfusion if
// this Attribute holds a private value instead.
func (a Attribute) Public() (*bn256.GT, error) {
	if a.kind != attrPublic {
		return nil, newErr(TypeConfusion, fmt.Sprintf("attribute %q has no public value", a.Name))
	}
	return a.pub, nil
}

// Private returns the Fr value of a private Attribute, or TypeConfusion if
// this Attribute holds a public value instead.
func (a Attribute) Private() (*big.Int, error) {
	if a.kind != attrPrivate {
		return nil, newErr(TypeConfusion, fmt.Sprintf("attribute %q has no private value", a.Name))
	}
	return a.priv, nil
}

// PublicKey is produced once per authority by Setup.
type PublicKey struct {
	G          *bn256.GT // h^s for the scheme's sampled generator h
	Attributes []Attribute
}

func (pk *PublicKey) public(name string) (*bn256.GT, error) {
	for _, a := range pk.Attributes {
		if a.Name == name {
			return a.Public()
		}
	}
	return nil, newErr(UnknownAttribute, fmt.Sprintf("attribute %q not found in public key", name))
}

// MasterKey is produced once per authority by Setup, and retained by the
// authority only.
type MasterKey struct {
	S          *big.Int
	Attributes []Attribute
}

func (msk *MasterKey) private(name string) (*big.Int, error) {
	for _, a := range msk.Attributes {
		if a.Name == name {
			return a.Private()
		}
	}
	return nil, newErr(UnknownAttribute, fmt.Sprintf("attribute %q not found in master key", name))
}

// SecretKey is produced per user by Keygen, and is long-lived. It carries
// its access policy's original textual source and language so it can be
// reparsed by Decrypt.
type SecretKey struct {
	PolicySource string
	Language     Language
	Du           []Attribute // one entry per policy leaf, Name = labeled (per-leaf unique) name
}

func (sk *SecretKey) private(labeledName string) (*big.Int, error) {
	for _, a := range sk.Du {
		if a.Name == labeledName {
			return a.Private()
		}
	}
	return nil, newErr(UnknownAttribute, fmt.Sprintf("no secret-key entry for %q", labeledName))
}

// Ciphertext is produced per message by Encrypt.
type Ciphertext struct {
	Attributes []Attribute // Name = bare attribute name
	Ct         []byte      // AEAD envelope: nonce ∥ ciphertext ∥ tag
}

func (ct *Ciphertext) public(name string) (*bn256.GT, error) {
	for _, a := range ct.Attributes {
		if a.Name == name {
			return a.Public()
		}
	}
	return nil, newErr(UnknownAttribute, fmt.Sprintf("attribute %q not present in ciphertext", name))
}

// Yct14 is a Key-Policy Attribute-Based Encryption scheme in the style of
// Yao, Chen, Tian 2014 ("A lightweight attribute-based encryption scheme
// for the Internet of things"). Unlike pairing-based KP-ABE schemes
// (GPSW, FAME, MA-ABE, DIPPE), YCT14 uses no bilinear pairing: all
// algebra happens in a single target group Gt.
//
// WARNING: YCT14 has documented cryptanalytic attacks recovering the
// master secret key, and a subsequent "fixed" variant was broken again; a
// practical exploitation was demonstrated at Black Hat EU 2021. This
// package faithfully reproduces the published algorithm for reference and
// interoperability. It makes no claim of collusion resistance, CCA
// security, or of symmetric-layer integrity beyond what the AEAD
// primitive provides. Do not use it to protect data you care about.
type Yct14 struct{}

// NewYct14 configures a new instance of the scheme.
func NewYct14() *Yct14 {
	return &Yct14{}
}

// Setup samples a master scalar s and a generator g, and for every
// declared attribute a per-attribute scalar s_i. It publishes g^s and
// {(name_i, g^{s_i})} as the public key, and retains (s, {(name_i, s_i)})
// as the master key.
func (*Yct14) Setup(attributes []string) (*PublicKey, *MasterKey, error) {
	s, err := randomFr()
	if err != nil {
		return nil, nil, err
	}
	g, err := randomGenerator()
	if err != nil {
		return nil, nil, err
	}

	pubAttrs := make([]Attribute, 0, len(attributes))
	privAttrs := make([]Attribute, 0, len(attributes))
	for _, name := range attributes {
		si, err := randomFr()
		if err != nil {
			return nil, nil, err
		}
		pubAttrs = append(pubAttrs, Attribute{Name: name, kind: attrPublic, pub: new(bn256.GT).ScalarMult(g, si)})
		privAttrs = append(privAttrs, Attribute{Name: name, kind: attrPrivate, priv: si})
	}

	pk := &PublicKey{G: new(bn256.GT).ScalarMult(g, s), Attributes: pubAttrs}
	msk := &MasterKey{S: s, Attributes: privAttrs}
	return pk, msk, nil
}

// Keygen parses policySource under language, splits msk.S into one share
// per policy leaf, and converts each share into a secret-key entry
// share_i · s_i^{-1}.
func (*Yct14) Keygen(msk *MasterKey, policySource string, language Language) (*SecretKey, error) {
	tree, err := Parse(policySource, language)
	if err != nil {
		return nil, err
	}
	shares, err := GenSharesPolicy(msk.S, tree)
	if err != nil {
		return nil, wrapErr(PolicyShape, err, "generating shares during keygen")
	}

	du := make([]Attribute, 0, len(shares))
	for _, share := range shares {
		bareName := StripIndex(share.Label)
		si, err := msk.private(bareName)
		if err != nil {
			return nil, err
		}
		siInv, err := frInverse(si)
		if err != nil {
			return nil, err
		}
		du = append(du, Attribute{
			Name: share.Label,
			kind: attrPrivate,
			priv: frMul(share.Value, siInv),
		})
	}

	return &SecretKey{PolicySource: policySource, Language: language, Du: du}, nil
}

// Encrypt samples a fresh scalar k, derives the session element
// C_s = (g^s)^k, and publishes {(name_j, g^{s_j·k})} for attributes.
// The plaintext is sealed under an AEAD keyed by C_s.
func (*Yct14) Encrypt(pk *PublicKey, attributes []string, plaintext []byte) (*Ciphertext, error) {
	if len(attributes) == 0 {
		return nil, newErr(EmptyInput, "attribute set must not be empty")
	}
	if len(plaintext) == 0 {
		return nil, newErr(EmptyInput, "plaintext must not be empty")
	}

	k, err := randomFr()
	if err != nil {
		return nil, err
	}
	sessionKey := new(bn256.GT).ScalarMult(pk.G, k)

	ctAttrs := make([]Attribute, 0, len(attributes))
	for _, name := range attributes {
		base, err := pk.public(name)
		if err != nil {
			return nil, err
		}
		ctAttrs = append(ctAttrs, Attribute{Name: name, kind: attrPublic, pub: new(bn256.GT).ScalarMult(base, k)})
	}

	envelope, err := sealSymmetric(sessionKey, plaintext)
	if err != nil {
		return nil, err
	}
	return &Ciphertext{Attributes: ctAttrs, Ct: envelope}, nil
}

// Decrypt checks that ct's attribute set satisfies sk's policy, computes
// recovery coefficients for a minimum satisfying cover, reconstructs
// C_s = g^{s·k} by a weighted product, and opens the AEAD envelope.
func (*Yct14) Decrypt(sk *SecretKey, ct *Ciphertext) ([]byte, error) {
	tree, err := Parse(sk.PolicySource, sk.Language)
	if err != nil {
		return nil, err
	}

	available := make(map[string]bool, len(ct.Attributes))
	for _, a := range ct.Attributes {
		available[a.Name] = true
	}

	ok, cover := CalcPruned(available, tree)
	if !ok {
		return nil, newErr(PolicyMismatch, "ciphertext attributes do not satisfy the secret key's policy")
	}
	coeffs := CalcCoefficients(tree, big.NewInt(1))

	sessionKey := gtIdentity()
	for _, entry := range cover {
		u, err := ct.public(entry.Bare)
		if err != nil {
			return nil, err
		}
		d, err := sk.private(entry.Labeled)
		if err != nil {
			return nil, err
		}
		lambda, ok := coeffs[entry.Labeled]
		if !ok {
			return nil, newErr(PolicyShape, fmt.Sprintf("no recovery coefficient for %q", entry.Labeled))
		}
		term := new(bn256.GT).ScalarMult(u, frMul(d, lambda))
		sessionKey = new(bn256.GT).Add(sessionKey, term)
	}

	return openSymmetric(sessionKey, ct.Ct)
}

// gtIdentity returns the identity element of Gt.
func gtIdentity() *bn256.GT {
	return new(bn256.GT).ScalarBaseMult(big.NewInt(0))
}
