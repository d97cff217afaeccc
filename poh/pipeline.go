package poh

import (
	"errors"
	"fmt"
	"time"

	"tickchain/logx"
	"tickchain/monitoring"
)

// Block is a fixed-size run of consecutive ticks handed from producer to
// verifier as one unit. Start is the global position of Ticks[0].
type Block struct {
	Start uint64
	Ticks [][]byte
}

// Producer drives a recorder continuously, cutting the history into
// fixed-size blocks for a downstream verifier. Block size trades handoff
// overhead against verifier latency.
type Producer struct {
	rec       *Recorder
	blockSize int
	dataEvery int
	payload   func(pos uint64) []byte
}

// NewProducer creates a producer cutting blocks of blockSize ticks.
func NewProducer(rec *Recorder, blockSize int) *Producer {
	if blockSize <= 0 {
		panic("blockSize must be > 0")
	}
	return &Producer{rec: rec, blockSize: blockSize}
}

// MixPayloads makes the producer record a payload commitment on every
// every-th tick. The payload function receives the tick's position.
func (p *Producer) MixPayloads(every int, payload func(pos uint64) []byte) {
	p.dataEvery = every
	p.payload = payload
}

// Run emits total ticks, sending each filled block over the channel. When
// total is not a multiple of the block size, the trailing short block is
// flushed as well so producer and verifier histories cover the same ticks.
// The channel should have capacity 1: when the verifier cannot keep up,
// the send stalls the producer instead of buffering unboundedly. The
// channel is closed after the final block; end of stream is the only
// termination signal.
func (p *Producer) Run(total int, blocks chan<- Block) {
	defer close(blocks)

	start := p.rec.Height()
	for i := 0; i < total; i++ {
		pos := start + uint64(i)
		if p.dataEvery > 0 && (i+1)%p.dataEvery == 0 {
			p.rec.Record([][]byte{p.payload(pos)})
		} else {
			p.rec.TickOnly()
		}

		if (i+1)%p.blockSize == 0 {
			p.cutBlock(pos+1-uint64(p.blockSize), pos+1, blocks)
		}
	}

	if remainder := total % p.blockSize; remainder > 0 {
		end := start + uint64(total)
		p.cutBlock(end-uint64(remainder), end, blocks)
	}
}

func (p *Producer) cutBlock(blockStart, end uint64, blocks chan<- Block) {
	block := Block{
		Start: blockStart,
		Ticks: p.rec.Slice(blockStart, end),
	}
	logx.Debug("Producer", fmt.Sprintf("Produced block %d..%d", blockStart, end))
	monitoring.AddTickCount(len(block.Ticks))
	monitoring.IncreaseBlocksProduced()
	blocks <- block
}

// VerifyLoop consumes blocks in production order and maintains its own
// replica of the history. For each block the boundary window spanning the
// previous block (or the seed, for the first block) is checked before the
// block's internal chain: a tick dropped or reordered in transit is
// invisible to the intra-block check alone. The replica built so far is
// returned together with the first failure, whose index is global.
//
// stop may be nil; when non-nil, closing it ends the loop between blocks.
func VerifyLoop(alg Algorithm, seed []byte, blocks <-chan Block, store *CommitmentStore, stop <-chan struct{}) ([][]byte, error) {
	var replica [][]byte
	prev := normalize(alg, seed)

	for {
		var block Block
		var ok bool
		select {
		case <-stop:
			return replica, nil
		case block, ok = <-blocks:
			if !ok {
				return replica, nil
			}
		}
		if len(block.Ticks) == 0 {
			continue
		}

		timer := time.Now()
		window := [][]byte{prev, block.Ticks[0]}
		headData := func(_ int, _ []byte) []byte {
			if c, found := store.Get(block.Start); found {
				return c
			}
			return alg.Zero()
		}
		if err := Verify(alg, window, headData); err != nil {
			monitoring.IncreaseChainBreakCount()
			return replica, &ChainBrokenError{Index: int(block.Start)}
		}

		if err := Verify(alg, block.Ticks, store.DataFunc(block.Start)); err != nil {
			monitoring.IncreaseChainBreakCount()
			var broken *ChainBrokenError
			if errors.As(err, &broken) {
				return replica, &ChainBrokenError{Index: broken.Index + int(block.Start)}
			}
			return replica, err
		}

		replica = append(replica, block.Ticks...)
		prev = block.Ticks[len(block.Ticks)-1]
		monitoring.IncreaseBlocksVerified()
		monitoring.RecordVerifyDuration(time.Since(timer))
		logx.Debug("Verifier", fmt.Sprintf("Verified block %d..%d", block.Start, block.Start+uint64(len(block.Ticks))))
	}
}
