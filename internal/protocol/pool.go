// Package protocol defines the wire format of persisted pool records.
package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var errBadMessage = errors.New("protocol: bad message")

const (
	poolInfoSnapshotField = 1

	snapshotInfoNameField        = 1
	snapshotInfoAddrField        = 2
	snapshotInfoPayloadSizeField = 3
)

// PoolInfo describes all snapshots in a pool.
type PoolInfo struct {
	Snapshots []SnapshotInfo
}

// Reset resets the pool info to empty.
func (pi *PoolInfo) Reset() { *pi = PoolInfo{} }

// String returns a human-readable form of the pool info.
func (pi *PoolInfo) String() string { return fmt.Sprintf("%+v", *pi) }

// ProtoMessage marks the pool info as a protobuf message.
func (pi *PoolInfo) ProtoMessage() {}

// Size returns the number of bytes of the marshaled pool info.
func (pi *PoolInfo) Size() int {
	n := 0

	for i := range pi.Snapshots {
		m := pi.Snapshots[i].Size()
		n += 1 + uvarintSize(uint64(m)) + m
	}

	return n
}

// Marshal returns the marshaled pool info.
func (pi *PoolInfo) Marshal() ([]byte, error) {
	buffer := make([]byte, pi.Size())

	if _, err := pi.MarshalTo(buffer); err != nil {
		return nil, err
	}

	return buffer, nil
}

// MarshalTo marshals the pool info to the given buffer.
func (pi *PoolInfo) MarshalTo(buffer []byte) (int, error) {
	i := 0

	for j := range pi.Snapshots {
		snapshotInfo := &pi.Snapshots[j]
		i += putTag(buffer[i:], poolInfoSnapshotField, wireBytes)
		i += binary.PutUvarint(buffer[i:], uint64(snapshotInfo.Size()))
		n, err := snapshotInfo.MarshalTo(buffer[i:])

		if err != nil {
			return i, err
		}

		i += n
	}

	return i, nil
}

// Unmarshal unmarshals the pool info from the given data.
func (pi *PoolInfo) Unmarshal(data []byte) error {
	pi.Reset()

	for i := 0; i < len(data); {
		fieldNumber, wireType, n := getTag(data[i:])

		if n <= 0 || fieldNumber != poolInfoSnapshotField || wireType != wireBytes {
			return errBadMessage
		}

		i += n
		rawSnapshotInfo, n := getBytes(data[i:])

		if n <= 0 {
			return errBadMessage
		}

		i += n
		var snapshotInfo SnapshotInfo

		if err := snapshotInfo.Unmarshal(rawSnapshotInfo); err != nil {
			return err
		}

		pi.Snapshots = append(pi.Snapshots, snapshotInfo)
	}

	return nil
}

// SnapshotInfo describes a single snapshot in a pool.
type SnapshotInfo struct {
	Name        BytesView
	Addr        int64
	PayloadSize int64
}

// Reset resets the snapshot info to empty.
func (si *SnapshotInfo) Reset() { *si = SnapshotInfo{} }

// String returns a human-readable form of the snapshot info.
func (si *SnapshotInfo) String() string { return fmt.Sprintf("%+v", *si) }

// ProtoMessage marks the snapshot info as a protobuf message.
func (si *SnapshotInfo) ProtoMessage() {}

// Size returns the number of bytes of the marshaled snapshot info.
func (si *SnapshotInfo) Size() int {
	n := 1 + uvarintSize(uint64(si.Name.Size())) + si.Name.Size()
	n += 1 + uvarintSize(uint64(si.Addr))
	n += 1 + uvarintSize(uint64(si.PayloadSize))
	return n
}

// Marshal returns the marshaled snapshot info.
func (si *SnapshotInfo) Marshal() ([]byte, error) {
	buffer := make([]byte, si.Size())

	if _, err := si.MarshalTo(buffer); err != nil {
		return nil, err
	}

	return buffer, nil
}

// MarshalTo marshals the snapshot info to the given buffer.
func (si *SnapshotInfo) MarshalTo(buffer []byte) (int, error) {
	i := putTag(buffer, snapshotInfoNameField, wireBytes)
	i += binary.PutUvarint(buffer[i:], uint64(si.Name.Size()))
	n, err := si.Name.MarshalTo(buffer[i:])

	if err != nil {
		return i, err
	}

	i += n
	i += putTag(buffer[i:], snapshotInfoAddrField, wireVarint)
	i += binary.PutUvarint(buffer[i:], uint64(si.Addr))
	i += putTag(buffer[i:], snapshotInfoPayloadSizeField, wireVarint)
	i += binary.PutUvarint(buffer[i:], uint64(si.PayloadSize))
	return i, nil
}

// Unmarshal unmarshals the snapshot info from the given data.
func (si *SnapshotInfo) Unmarshal(data []byte) error {
	si.Reset()

	for i := 0; i < len(data); {
		fieldNumber, wireType, n := getTag(data[i:])

		if n <= 0 {
			return errBadMessage
		}

		i += n

		switch {
		case fieldNumber == snapshotInfoNameField && wireType == wireBytes:
			rawName, n := getBytes(data[i:])

			if n <= 0 {
				return errBadMessage
			}

			i += n

			if err := si.Name.Unmarshal(rawName); err != nil {
				return err
			}
		case fieldNumber == snapshotInfoAddrField && wireType == wireVarint:
			value, n := binary.Uvarint(data[i:])

			if n <= 0 {
				return errBadMessage
			}

			i += n
			si.Addr = int64(value)
		case fieldNumber == snapshotInfoPayloadSizeField && wireType == wireVarint:
			value, n := binary.Uvarint(data[i:])

			if n <= 0 {
				return errBadMessage
			}

			i += n
			si.PayloadSize = int64(value)
		default:
			return errBadMessage
		}
	}

	return nil
}

const (
	wireVarint = 0
	wireBytes  = 2
)

func putTag(buffer []byte, fieldNumber int, wireType int) int {
	return binary.PutUvarint(buffer, uint64(fieldNumber)<<3|uint64(wireType))
}

func getTag(data []byte) (int, int, int) {
	tag, n := binary.Uvarint(data)
	return int(tag >> 3), int(tag & 7), n
}

func uvarintSize(value uint64) int {
	n := 1

	for value >= 0x80 {
		value >>= 7
		n++
	}

	return n
}

func getBytes(data []byte) ([]byte, int) {
	size, i := binary.Uvarint(data)

	if i <= 0 || uint64(len(data)-i) < size {
		return nil, -1
	}

	return data[i : i+int(size)], i + int(size)
}
