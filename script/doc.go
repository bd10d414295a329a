// Package script runs Lua scripts against a Binding.
//
// Scripts see a module named "px", available both as a global and through
// require("px"). Handles are userdata with per-kind methods; vectors,
// poses and planes are plain tables:
//
//	local f = px.create_foundation()
//	local e = px.create_physics(f)
//	local s = px.create_scene(e, { gravity = { x = 0, y = -9.81, z = 0 }, workers = 2 })
//	local m = px.create_material(e, 0.5, 0.5, 0.1)
//	s:add_actor(px.create_plane(e, { n = { x = 0, y = 1, z = 0 }, d = 0 }, m))
//
//	local ball = px.create_rigid_dynamic(e, { p = { x = 0, y = 10, z = 0 } })
//	ball:attach(px.create_shape(e, px.sphere(0.5), m))
//	s:add_actor(ball)
//	for i = 1, 120 do s:advance(1/60) end
//	print(ball:pose().p.y)
//
// Binding errors are raised as px.error values carrying kind and message
// fields, so scripts can inspect them under pcall. Run returns the
// original binding error when a script does not catch it.
package script
