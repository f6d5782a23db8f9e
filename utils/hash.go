package utils

import (
	"encoding/hex"
	"github.com/minio/sha256-simd"
)

func Hash(data []byte) [32]byte {
	return sha256.Sum256(data)
}

func HashString(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
