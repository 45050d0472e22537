package jwpub

import (
	"bytes"
	"compress/flate"
	"compress/zlib"
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"jwsched/internal/puberr"
)

func TestDeriveKeyMaterialIsDeterministic(t *testing.T) {
	km1, err := deriveKeyMaterial("0_mwb_2024_202401")
	if err != nil {
		t.Fatalf("deriveKeyMaterial returned error: %v", err)
	}
	km2, err := deriveKeyMaterial("0_mwb_2024_202401")
	if err != nil {
		t.Fatalf("deriveKeyMaterial returned error: %v", err)
	}
	if !bytes.Equal(km1.key, km2.key) || !bytes.Equal(km1.iv, km2.iv) {
		t.Fatal("derivation must be deterministic")
	}
	if len(km1.key) != 16 || len(km1.iv) != 16 {
		t.Fatalf("key/iv lengths: got %d/%d want 16/16", len(km1.key), len(km1.iv))
	}

	// Independent recomputation: SHA-256 of the tag XORed with the decoded
	// mask, split 16/16.
	maskHex, err := base64.StdEncoding.DecodeString(contentMask)
	if err != nil {
		t.Fatalf("decode mask: %v", err)
	}
	mask, err := hex.DecodeString(string(maskHex))
	if err != nil {
		t.Fatalf("decode mask hex: %v", err)
	}
	hash := sha256.Sum256([]byte("0_mwb_2024_202401"))
	want := make([]byte, 32)
	for i := range want {
		want[i] = hash[i] ^ mask[i]
	}
	if !bytes.Equal(km1.key, want[:16]) {
		t.Fatalf("key: got %x want %x", km1.key, want[:16])
	}
	if !bytes.Equal(km1.iv, want[16:]) {
		t.Fatalf("iv: got %x want %x", km1.iv, want[16:])
	}
}

func TestDeriveKeyMaterialVariesByTag(t *testing.T) {
	km1, err := deriveKeyMaterial("0_mwb_2024_202401")
	if err != nil {
		t.Fatalf("deriveKeyMaterial returned error: %v", err)
	}
	km2, err := deriveKeyMaterial("0_w_2024_202401")
	if err != nil {
		t.Fatalf("deriveKeyMaterial returned error: %v", err)
	}
	if bytes.Equal(km1.key, km2.key) {
		t.Fatal("different tags must derive different keys")
	}
}

// encryptBlob mirrors the publication tooling: raw DEFLATE, PKCS#7 pad,
// AES-128-CBC.
func encryptBlob(t *testing.T, km keyMaterial, plain []byte) []byte {
	t.Helper()

	var deflated bytes.Buffer
	fw, err := flate.NewWriter(&deflated, flate.DefaultCompression)
	if err != nil {
		t.Fatalf("new flate writer: %v", err)
	}
	if _, err := fw.Write(plain); err != nil {
		t.Fatalf("deflate: %v", err)
	}
	if err := fw.Close(); err != nil {
		t.Fatalf("close flate writer: %v", err)
	}

	data := deflated.Bytes()
	pad := aes.BlockSize - len(data)%aes.BlockSize
	for i := 0; i < pad; i++ {
		data = append(data, byte(pad))
	}

	block, err := aes.NewCipher(km.key)
	if err != nil {
		t.Fatalf("new cipher: %v", err)
	}
	out := make([]byte, len(data))
	cipher.NewCBCEncrypter(block, km.iv).CryptBlocks(out, data)
	return out
}

func TestDecodeRoundTrip(t *testing.T) {
	km, err := deriveKeyMaterial("0_mwb_2024_202401")
	if err != nil {
		t.Fatalf("deriveKeyMaterial returned error: %v", err)
	}

	want := []byte("<html><body><h1>January 1-7</h1></body></html>")
	blob := encryptBlob(t, km, want)

	got, err := km.decode(blob)
	if err != nil {
		t.Fatalf("decode returned error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("decode: got %q want %q", got, want)
	}
}

func TestDecodeFallsBackToZlib(t *testing.T) {
	km, err := deriveKeyMaterial("0_mwb_2024_202401")
	if err != nil {
		t.Fatalf("deriveKeyMaterial returned error: %v", err)
	}

	want := []byte("<html><body>plain stored content</body></html>")
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(want); err != nil {
		t.Fatalf("zlib write: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zlib close: %v", err)
	}

	got, err := km.decode(buf.Bytes())
	if err != nil {
		t.Fatalf("decode returned error: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("decode: got %q want %q", got, want)
	}
}

func TestDecodeFailsOnGarbage(t *testing.T) {
	km, err := deriveKeyMaterial("0_mwb_2024_202401")
	if err != nil {
		t.Fatalf("deriveKeyMaterial returned error: %v", err)
	}

	_, err = km.decode([]byte("definitely not a valid blob"))
	if !puberr.IsCode(err, puberr.CodeDecryptionFailed) {
		t.Fatalf("got %v, want DECRYPTION_FAILED", err)
	}
}
