package store

import (
	"testing"

	"chess-movegen/bitmg"

	. "gopkg.in/check.v1"
)

func Test(t *testing.T) { TestingT(t) }

type StoreSuite struct {
	s *Store
}

var _ = Suite(&StoreSuite{})

func (ss *StoreSuite) SetUpTest(c *C) {
	s, err := OpenInMemory()
	c.Assert(err, IsNil)
	ss.s = s
}

func (ss *StoreSuite) TearDownTest(c *C) {
	c.Assert(ss.s.Close(), IsNil)
}

func (ss *StoreSuite) TestMiss(c *C) {
	n, ok, err := ss.s.Get(bitmg.FENStartPos, 3)
	c.Assert(err, IsNil)
	c.Check(ok, Equals, false)
	c.Check(n, Equals, uint64(0))
}

func (ss *StoreSuite) TestPutGet(c *C) {
	c.Assert(ss.s.Put(bitmg.FENStartPos, 3, 8902), IsNil)
	n, ok, err := ss.s.Get(bitmg.FENStartPos, 3)
	c.Assert(err, IsNil)
	c.Check(ok, Equals, true)
	c.Check(n, Equals, uint64(8902))

	_, ok, err = ss.s.Get(bitmg.FENStartPos, 4)
	c.Assert(err, IsNil)
	c.Check(ok, Equals, false)
}

func (ss *StoreSuite) TestClocksIgnored(c *C) {
	c.Assert(ss.s.Put("4k3/8/8/8/8/8/8/4K3 w - - 0 1", 2, 25), IsNil)
	n, ok, err := ss.s.Get("4k3/8/8/8/8/8/8/4K3 w - - 17 40", 2)
	c.Assert(err, IsNil)
	c.Check(ok, Equals, true)
	c.Check(n, Equals, uint64(25))

	n, ok, err = ss.s.Get("4k3/8/8/8/8/8/8/4K3 w - -", 2)
	c.Assert(err, IsNil)
	c.Check(ok, Equals, true)
	c.Check(n, Equals, uint64(25))
}

func (ss *StoreSuite) TestOverwrite(c *C) {
	c.Assert(ss.s.Put(bitmg.FENStartPos, 1, 19), IsNil)
	c.Assert(ss.s.Put(bitmg.FENStartPos, 1, 20), IsNil)
	n, _, err := ss.s.Get(bitmg.FENStartPos, 1)
	c.Assert(err, IsNil)
	c.Check(n, Equals, uint64(20))
}

func (ss *StoreSuite) TestInvalidFEN(c *C) {
	_, _, err := ss.s.Get("garbage", 1)
	c.Check(err, ErrorMatches, ".*invalid FEN.*")
	c.Check(ss.s.Put("garbage", 1, 1), NotNil)
}

func (ss *StoreSuite) TestClosed(c *C) {
	s, err := OpenInMemory()
	c.Assert(err, IsNil)
	c.Assert(s.Close(), IsNil)
	c.Check(s.Close(), Equals, ErrClosed)
	_, _, err = s.Get(bitmg.FENStartPos, 1)
	c.Check(err, Equals, ErrClosed)
	c.Check(s.Put(bitmg.FENStartPos, 1, 20), Equals, ErrClosed)
}

func (ss *StoreSuite) TestPersistsAcrossOpen(c *C) {
	dir := c.MkDir()
	s, err := Open(dir)
	c.Assert(err, IsNil)
	c.Assert(s.Put(bitmg.FENStartPos, 4, 197281), IsNil)
	c.Assert(s.Close(), IsNil)

	s, err = Open(dir)
	c.Assert(err, IsNil)
	defer s.Close()
	n, ok, err := s.Get(bitmg.FENStartPos, 4)
	c.Assert(err, IsNil)
	c.Check(ok, Equals, true)
	c.Check(n, Equals, uint64(197281))
}
