package smallbuf

import (
	"encoding/binary"
	"sort"

	"github.com/gogo/protobuf/proto"
	"github.com/roy2220/fsm"

	"github.com/roy2220/smallbuf/internal/protocol"
)

// Pool represents a collection of named buffer snapshots persisted
// on a file.
type Pool struct {
	fileStorage fsm.FileStorage
	snapshots   map[string]snapshot
	payloadSize int
}

type snapshot struct {
	addr int64
	size int
}

// OpenPool opens a pool on the given file.
func OpenPool(fileName string, createFileIfNotExists bool) (*Pool, error) {
	var p Pool
	p.fileStorage.Init()

	if err := p.fileStorage.Open(fileName, createFileIfNotExists); err != nil {
		return nil, err
	}

	p.snapshots = map[string]snapshot{}

	if poolInfoAddr := p.fileStorage.PrimarySpace(); poolInfoAddr >= 0 {
		p.load(poolInfoAddr)
	}

	logger.Debugf("pool opened: fileName=%q numberOfSnapshots=%d", fileName, len(p.snapshots))
	return &p, nil
}

// Close closes the pool.
func (p *Pool) Close() error {
	p.fileStorage.SetPrimarySpace(p.store())
	logger.Debugf("pool closing: payloadSize=%d", p.payloadSize)
	return p.fileStorage.Close()
}

// Save stores a snapshot of the given data under the given name.
// If a snapshot is already stored under the name, it is replaced
// and its space is freed.
func (p *Pool) Save(name string, data []byte) {
	if s, ok := p.snapshots[name]; ok {
		p.fileStorage.FreeSpace(s.addr)
		p.payloadSize -= s.size
	}

	p.snapshots[name] = snapshot{
		addr: p.allocateSnapshot(data),
		size: len(data),
	}

	p.payloadSize += len(data)
}

// Load returns a copy of the snapshot stored under the given name.
// If the name exists, it returns true and the copy, otherwise it
// returns false.
func (p *Pool) Load(name string) ([]byte, bool) {
	s, ok := p.snapshots[name]

	if !ok {
		return nil, false
	}

	return copyBytes(p.getSnapshot(s.addr)), true
}

// Remove removes the snapshot stored under the given name.
// If the name exists, it frees the snapshot's space and returns
// true, otherwise it returns false.
func (p *Pool) Remove(name string) bool {
	s, ok := p.snapshots[name]

	if !ok {
		return false
	}

	p.fileStorage.FreeSpace(s.addr)
	p.payloadSize -= s.size
	delete(p.snapshots, name)
	return true
}

// Names returns the names of all snapshots in the pool, sorted.
func (p *Pool) Names() []string {
	names := make([]string, 0, len(p.snapshots))

	for name := range p.snapshots {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Stats returns the stats of the pool.
func (p *Pool) Stats() Stats {
	return Stats{
		FSM:               p.fileStorage.Stats(),
		NumberOfSnapshots: len(p.snapshots),
		PayloadSize:       p.payloadSize,
	}
}

// Stats represents the stats about pools.
type Stats struct {
	FSM               fsm.Stats
	NumberOfSnapshots int
	PayloadSize       int
}

// SaveBuffer stores a snapshot of the given buffer's contents in the
// given pool under the given name.
func SaveBuffer[A any](p *Pool, name string, b *Buffer[A]) {
	p.Save(name, b.Bytes())
}

// LoadBuffer initializes a buffer from the snapshot stored in the
// given pool under the given name.
// If the name exists, it returns true and a buffer sized to the
// snapshot, otherwise it returns false.
func LoadBuffer[A any](p *Pool, name string) (*Buffer[A], bool) {
	s, ok := p.snapshots[name]

	if !ok {
		return nil, false
	}

	b := new(Buffer[A]).Init(s.size)
	b.CopyIn(0, p.getSnapshot(s.addr))
	return b, true
}

func (p *Pool) load(poolInfoAddr int64) {
	buffer := proto.NewBuffer(p.fileStorage.AccessSpace(poolInfoAddr))
	var poolInfo protocol.PoolInfo

	if err := buffer.DecodeMessage(&poolInfo); err != nil {
		panic(errCorrupted)
	}

	for i := range poolInfo.Snapshots {
		snapshotInfo := &poolInfo.Snapshots[i]

		p.snapshots[string(snapshotInfo.Name)] = snapshot{
			addr: snapshotInfo.Addr,
			size: int(snapshotInfo.PayloadSize),
		}

		p.payloadSize += int(snapshotInfo.PayloadSize)
	}

	// The snapshot names alias the info space, so it is freed only
	// after they have been copied into the map keys.
	p.fileStorage.FreeSpace(poolInfoAddr)
}

func (p *Pool) store() int64 {
	poolInfo := protocol.PoolInfo{
		Snapshots: make([]protocol.SnapshotInfo, 0, len(p.snapshots)),
	}

	for name, s := range p.snapshots {
		poolInfo.Snapshots = append(poolInfo.Snapshots, protocol.SnapshotInfo{
			Name:        protocol.BytesView(name),
			Addr:        s.addr,
			PayloadSize: int64(s.size),
		})
	}

	buffer := proto.NewBuffer(nil)
	buffer.EncodeMessage(&poolInfo)
	poolInfoAddr, buffer2 := p.fileStorage.AllocateSpace(len(buffer.Bytes()))
	copy(buffer2, buffer.Bytes())
	p.snapshots = nil
	p.payloadSize = 0
	return poolInfoAddr
}

func (p *Pool) allocateSnapshot(data []byte) int64 {
	rawSize := make([]byte, binary.MaxVarintLen64)
	rawSize = rawSize[:binary.PutUvarint(rawSize, uint64(len(data)))]
	addr, buffer := p.fileStorage.AllocateSpace(len(rawSize) + len(data))
	i := copy(buffer, rawSize)
	copy(buffer[i:], data)
	return addr
}

func (p *Pool) getSnapshot(addr int64) []byte {
	data := p.fileStorage.AccessSpace(addr)
	n, i := binary.Uvarint(data)

	if i <= 0 {
		panic(errCorrupted)
	}

	return data[i : i+int(n)]
}
