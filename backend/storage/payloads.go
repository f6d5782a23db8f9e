package storage

import (
	"encoding/binary"
	"errors"

	"github.com/howeyc/crc16"
	"github.com/trackerdqm/pixelineff/ineff"
	"go.etcd.io/bbolt"
)

var BucketNotFound = errors.New("bucket not found")
var PayloadNotFound = errors.New("payload not found")
var ChecksumMismatch = errors.New("payload checksum mismatch")

// One bucket per tag; keys are big-endian IOV "since" values so the
// bucket cursor walks IOVs in ascending order.

func GetTagBucket(tx *bbolt.Tx, tag string) (tagBucket *bbolt.Bucket, err error) {
	if tx.Writable() {
		tagBucket, err = tx.CreateBucketIfNotExists([]byte(tag))
	} else {
		tagBucket = tx.Bucket([]byte(tag))
		if tagBucket == nil {
			err = BucketNotFound
		}
	}
	return
}

func iovKey(since uint64) []byte {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], since)
	return key[:]
}

// sealRecord appends a CCITT crc16 trailer, the same framing the
// record is checked against on the way back out.
func sealRecord(data []byte) []byte {
	checkSum := crc16.ChecksumCCITTFalse(data)
	return append(data, byte(checkSum>>8), byte(checkSum&0xff))
}

func openRecord(record []byte) ([]byte, error) {
	if len(record) < 2 {
		return nil, ChecksumMismatch
	}
	data := record[:len(record)-2]
	checkSum := uint16(record[len(record)-2])<<8 | uint16(record[len(record)-1])
	if crc16.ChecksumCCITTFalse(data) != checkSum {
		return nil, ChecksumMismatch
	}
	return data, nil
}

func WritePayload(db *bbolt.DB, tag string, since uint64, payload *ineff.Payload) error {
	data, err := payload.Encode()
	if err != nil {
		return err
	}
	return db.Update(func(tx *bbolt.Tx) error {
		tagBucket, bucketErr := GetTagBucket(tx, tag)
		if bucketErr != nil {
			return bucketErr
		}
		return tagBucket.Put(iovKey(since), sealRecord(data))
	})
}

func ReadPayload(db *bbolt.DB, tag string, since uint64) (payload *ineff.Payload, err error) {
	err = db.View(func(tx *bbolt.Tx) error {
		tagBucket, bucketErr := GetTagBucket(tx, tag)
		if bucketErr != nil {
			return bucketErr
		}
		record := tagBucket.Get(iovKey(since))
		if record == nil {
			return PayloadNotFound
		}
		data, recordErr := openRecord(record)
		if recordErr != nil {
			return recordErr
		}
		payload, recordErr = ineff.DecodePayload(data)
		return recordErr
	})
	return
}

// ReadLastPayload returns the payload whose IOV covers the query: the
// entry with the largest "since" not above the requested one.
func ReadLastPayload(db *bbolt.DB, tag string, since uint64) (payload *ineff.Payload, found uint64, err error) {
	err = db.View(func(tx *bbolt.Tx) error {
		tagBucket, bucketErr := GetTagBucket(tx, tag)
		if bucketErr != nil {
			return bucketErr
		}
		cursor := tagBucket.Cursor()
		key, record := cursor.Seek(iovKey(since))
		if key == nil {
			key, record = cursor.Last()
		} else if binary.BigEndian.Uint64(key) > since {
			key, record = cursor.Prev()
		}
		if key == nil {
			return PayloadNotFound
		}
		found = binary.BigEndian.Uint64(key)
		data, recordErr := openRecord(record)
		if recordErr != nil {
			return recordErr
		}
		payload, recordErr = ineff.DecodePayload(data)
		return recordErr
	})
	return
}

func GetTags(db *bbolt.DB) (tags []string, err error) {
	err = db.View(func(tx *bbolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bbolt.Bucket) error {
			tags = append(tags, string(name))
			return nil
		})
	})
	return
}

func GetIOVs(db *bbolt.DB, tag string) (iovs []uint64, err error) {
	err = db.View(func(tx *bbolt.Tx) error {
		tagBucket, bucketErr := GetTagBucket(tx, tag)
		if bucketErr != nil {
			return bucketErr
		}
		return tagBucket.ForEach(func(key, _ []byte) error {
			iovs = append(iovs, binary.BigEndian.Uint64(key))
			return nil
		})
	})
	return
}
