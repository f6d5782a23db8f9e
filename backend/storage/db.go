package storage

import (
	"github.com/trackerdqm/pixelineff/utils"
	"go.etcd.io/bbolt"
	"path"
)

const DBPath = "db"

func GetDBPath() string {
	return path.Join(utils.GetSubFolder(DBPath), "payloads.db")
}

func GetDB() (*bbolt.DB, error) {
	return bbolt.Open(GetDBPath(), 0600, nil)
}

func OpenDB(filePath string) (*bbolt.DB, error) {
	return bbolt.Open(filePath, 0600, nil)
}
