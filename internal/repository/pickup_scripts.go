package repository

import "github.com/redis/go-redis/v9"

// Script replies are {code, payload}:
//
//	 1, HGETALL of the record after the write (before it for delete)
//	 0, record does not exist
//	-1, current status, when the condition does not hold
const (
	replyOK       = 1
	replyNotFound = 0
	replyConflict = -1
)

// KEYS[1] item hash
// ARGV[1] status set key prefix (the sets are addressed outside KEYS),
// ARGV[2] updatedAt, ARGV[3] expected version (0 skips the check), ARGV[4]
// comma separated allowed statuses (empty skips the check), then
// op/field/value triples where op is "s" (set) or "r" (remove).
var updateScript = redis.NewScript(`
local key = KEYS[1]
if redis.call('EXISTS', key) == 0 then
  return {0}
end
local cur = redis.call('HGET', key, 'status')
local ver = tonumber(redis.call('HGET', key, 'version') or '0')
if ARGV[3] ~= '0' and tonumber(ARGV[3]) ~= ver then
  return {-1, cur}
end
if ARGV[4] ~= '' then
  local ok = false
  for s in string.gmatch(ARGV[4], '[^,]+') do
    if s == cur then
      ok = true
      break
    end
  end
  if not ok then
    return {-1, cur}
  end
end
local id = redis.call('HGET', key, 'id')
for i = 5, #ARGV, 3 do
  local op, field, val = ARGV[i], ARGV[i + 1], ARGV[i + 2]
  if op == 's' then
    redis.call('HSET', key, field, val)
    if field == 'status' and val ~= cur then
      redis.call('SREM', ARGV[1] .. cur, id)
      redis.call('SADD', ARGV[1] .. val, id)
    end
  else
    redis.call('HDEL', key, field)
  end
end
redis.call('HSET', key, 'updatedAt', ARGV[2])
redis.call('HINCRBY', key, 'version', 1)
return {1, redis.call('HGETALL', key)}
`)

// KEYS[1] item hash, KEYS[2] index
// ARGV[1] status set key prefix
var hardDeleteScript = redis.NewScript(`
local key = KEYS[1]
if redis.call('EXISTS', key) == 0 then
  return {0}
end
local rec = redis.call('HGETALL', key)
local id = redis.call('HGET', key, 'id')
local st = redis.call('HGET', key, 'status')
redis.call('DEL', key)
redis.call('ZREM', KEYS[2], id)
redis.call('SREM', ARGV[1] .. st, id)
return {1, rec}
`)
