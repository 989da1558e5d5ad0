package sqlinline

const QInsertDesign = `--sql 3c1f7a02-9d44-4b8e-a7c1-52fd0b6e9a11
insert into designs(
  id,
  storage_key,
  prompt,
  model,
  size,
  seed,
  style,
  color_name,
  mime,
  bytes,
  created_at
) values (
  $1::uuid,
  $2::text,
  $3::text,
  $4::text,
  nullif($5::text, ''),
  $6::bigint,
  nullif($7::text, ''),
  nullif($8::text, ''),
  $9::text,
  $10::bigint,
  now()
) returning id;
`

const QListDesigns = `--sql 8b27c6d5-1e93-47f0-bb6a-cf04d81e5f29
select
  id,
  storage_key,
  prompt,
  model,
  coalesce(size, ''),
  seed,
  coalesce(style, ''),
  coalesce(color_name, ''),
  mime,
  bytes,
  created_at
from designs
order by created_at desc
limit $1::int offset $2::int;
`

const QSelectDesignByID = `--sql f4a9e310-6c2b-4d57-9e88-1ab35c70d4e6
select id, storage_key, prompt, model, coalesce(size, ''), seed, coalesce(style, ''), coalesce(color_name, ''), mime, bytes, created_at
from designs
where id = $1::uuid
limit 1;
`
