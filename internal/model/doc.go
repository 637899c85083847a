package model

// Package model defines the data structures shared across the app: conversion
// options, the conversion task and its status enum. Structures are plain values
// meant for direct binding in the UI and explicit state transitions.
