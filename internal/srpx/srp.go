// Package srpx implements the client side of the SRP-6a password proof used
// by the identity provider. It covers ephemeral key generation, the shared
// secret derivation, and the HMAC claim signature. All arithmetic uses
// math/big over a fixed 3072-bit group.
//
// Byte-exactness matters throughout: the server hashes the padded big-endian
// byte strings of A, B, N, g and the salt, while pool name and username enter
// the final HMAC as UTF-8 text. A single padding mistake produces a claim the
// server silently rejects as "not authorized".
package srpx

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/mnedelko/geniable/internal/common"
	"golang.org/x/crypto/hkdf"
)

// nHex is the 3072-bit safe prime from RFC 5054 group 15, the fixed group the
// identity provider uses for USER_SRP_AUTH.
const nHex = "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD1" +
	"29024E088A67CC74020BBEA63B139B22514A08798E3404DD" +
	"EF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245" +
	"E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED" +
	"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3D" +
	"C2007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F" +
	"83655D23DCA3AD961C62F356208552BB9ED529077096966D" +
	"670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B" +
	"E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9" +
	"DE2BCBF6955817183995497CEA956AE515D2261898FA0510" +
	"15728E5A8AAAC42DAD33170D04507A33A85521ABDF1CBA64" +
	"ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7" +
	"ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6B" +
	"F12FFA06D98A0864D87602733EC86A64521F2B18177B200C" +
	"BBE117577A615D6C770988C0BAD946E208E24FA074E5AB31" +
	"43DB5BFCE0FD108E4B82D120A93AD2CAFFFFFFFFFFFFFFFF"

const gHex = "2"

// infoBits is the HKDF info label the provider expects for key derivation.
var infoBits = []byte("Caldera Derived Key")

var (
	groupN *big.Int
	groupG *big.Int
)

func init() {
	var ok bool
	groupN, ok = new(big.Int).SetString(nHex, 16)
	if !ok {
		panic("srpx: bad group prime")
	}
	groupG, _ = new(big.Int).SetString(gHex, 16)
}

// KeyPair holds the ephemeral SRP values for a single login attempt: the
// private exponent a and the public value A = g^a mod N.
//
// A KeyPair must never be persisted or reused across attempts; the private
// exponent would allow impersonation.
type KeyPair struct {
	a *big.Int
	A *big.Int
}

// GenerateKeyPair draws a fresh ephemeral key pair from the system random
// source: 128 random bytes reduced mod N give a, and A = g^a mod N.
func GenerateKeyPair() *KeyPair {
	buf := common.GenerateRandByteArray(128)

	a := new(big.Int).SetBytes(buf)
	a.Mod(a, groupN)
	common.WipeByteArray(buf)

	A := new(big.Int).Exp(groupG, a, groupN)

	return &KeyPair{a: a, A: A}
}

// PublicHex returns A as a minimal hex string, the form sent to the provider
// as SRP_A.
func (kp *KeyPair) PublicHex() string {
	return bigToHex(kp.A)
}

// Challenge is the PASSWORD_VERIFIER challenge tuple received from the
// provider. It is consumed once to produce a claim and then discarded.
type Challenge struct {
	// UserIDForSRP is the server-chosen username, which can differ from the
	// login identifier and must be echoed back unchanged.
	UserIDForSRP string

	// SaltHex is the user's password salt (hex).
	SaltHex string

	// PublicBHex is the server public value B (hex).
	PublicBHex string

	// SecretBlock is the opaque secret block (base64), echoed back and also
	// hashed into the claim.
	SecretBlock string

	// Timestamp is the client-chosen timestamp string; it enters the claim
	// and must be sent to the server byte-identical.
	Timestamp string
}

// ComputeClaim derives the SRP shared secret from the challenge and password
// and returns the base64 claim signature for PASSWORD_CLAIM_SIGNATURE.
//
// userPoolID is the full provider pool identifier; only the segment after its
// first underscore participates in the hashes.
func (kp *KeyPair) ComputeClaim(userPoolID, password string, ch Challenge) (string, error) {
	B, err := hexToBig(ch.PublicBHex)
	if err != nil {
		return "", fmt.Errorf("%w: srp_b: %s", common.ErrMalformedResponse, err)
	}

	u := computeU(kp.A, B)
	if u.Sign() == 0 {
		return "", fmt.Errorf("%w: u == 0", common.ErrSRPProtocol)
	}

	poolName, err := PoolName(userPoolID)
	if err != nil {
		return "", err
	}

	// x = H(salt || H(pool_name || username || ":" || password))
	userPassHash := sha256.Sum256([]byte(poolName + ch.UserIDForSRP + ":" + password))
	saltBytes, err := padBytes(ch.SaltHex)
	if err != nil {
		return "", fmt.Errorf("%w: salt: %s", common.ErrMalformedResponse, err)
	}
	x := hashToBig(saltBytes, userPassHash[:])

	// k = H(pad(N) || pad(g))
	nBytes, _ := padBytes(nHex)
	gBytes, _ := padBytes(gHex)
	k := hashToBig(nBytes, gBytes)

	// S = (B - k * g^x) ^ (a + u*x) mod N
	gPowX := new(big.Int).Exp(groupG, x, groupN)
	base := new(big.Int).Mul(k, gPowX)
	base.Sub(B, base)
	base.Mod(base, groupN)

	exp := new(big.Int).Mul(u, x)
	exp.Add(exp, kp.a)

	S := new(big.Int).Exp(base, exp, groupN)

	key, err := deriveKey(S, u)
	if err != nil {
		return "", err
	}

	secretBlock, err := base64.StdEncoding.DecodeString(ch.SecretBlock)
	if err != nil {
		return "", fmt.Errorf("%w: secret block: %s", common.ErrMalformedResponse, err)
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(poolName))
	mac.Write([]byte(ch.UserIDForSRP))
	mac.Write(secretBlock)
	mac.Write([]byte(ch.Timestamp))

	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

// PoolName extracts the pool name component from a provider pool identifier:
// the segment after the first separator, e.g. "XYZ" from "region_XYZ".
func PoolName(userPoolID string) (string, error) {
	_, name, ok := strings.Cut(userPoolID, "_")
	if !ok || name == "" {
		return "", fmt.Errorf("invalid user pool id %q", userPoolID)
	}
	return name, nil
}

// computeU hashes the padded byte strings of A and B into the SRP scrambling
// parameter u. It is a package variable so tests can force the u == 0 edge
// case, which is unreachable through SHA-256 otherwise.
var computeU = func(A, B *big.Int) *big.Int {
	return hashToBig(bigToPaddedBytes(A), bigToPaddedBytes(B))
}

// hashToBig returns SHA-256 over the concatenated parts, as a big.Int.
func hashToBig(parts ...[]byte) *big.Int {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}
	return new(big.Int).SetBytes(h.Sum(nil))
}

// deriveKey turns the shared secret S into the 16-byte HMAC key via
// HKDF-SHA256 with u as the extraction salt and the fixed info label.
func deriveKey(S, u *big.Int) ([]byte, error) {
	r := hkdf.New(sha256.New, bigToPaddedBytes(S), bigToPaddedBytes(u), infoBits)
	key := make([]byte, 16)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("deriving claim key: %w", err)
	}
	return key, nil
}
