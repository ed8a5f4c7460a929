package shared

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("FLEXI_RPS", "")

	c := Load()
	if c.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q", c.HTTPAddr)
	}
	if c.RedisDB != 0 {
		t.Fatalf("RedisDB default = %d", c.RedisDB)
	}
	if c.FlexiRPS != 2 {
		t.Fatalf("FlexiRPS default = %d", c.FlexiRPS)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("REDIS_DB", "3")
	t.Setenv("FLEXI_RPS", "5")
	t.Setenv("SYNC_PAUSE_MS", "250")

	c := Load()
	if c.RedisDB != 3 {
		t.Fatalf("RedisDB = %d, want 3", c.RedisDB)
	}
	if c.FlexiRPS != 5 {
		t.Fatalf("FlexiRPS = %d, want 5", c.FlexiRPS)
	}
	if c.SyncPause.Milliseconds() != 250 {
		t.Fatalf("SyncPause = %v", c.SyncPause)
	}
}
